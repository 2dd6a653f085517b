package algo

type LabelSettingParams struct {
	MaxLabels   int
	MaxFrontier int
	Epsilon     float64 // s
}

func DefaultLabelSettingParams() LabelSettingParams {
	return LabelSettingParams{
		MaxLabels:   DEFAULT_LS_LABELS,
		MaxFrontier: DEFAULT_FRONTIER_SIZE,
		Epsilon:     DEFAULT_LS_EPSILON,
	}
}

// LabelSetting 多目标Dijkstra：只按已累计的(时间, 排放)扩展，无启发、无剪枝
func (sc *SearchContext) LabelSetting(q Query, params LabelSettingParams) []*Solution {
	return sc.labelSearch(q, labelSearchParams{
		maxLabels:       params.MaxLabels,
		maxFrontier:     params.MaxFrontier,
		epsilon:         params.Epsilon,
		frontierEpsilon: params.Epsilon,
	}, func(sol *Solution, _ int) [2]float64 {
		return [2]float64{sol.TotalTime, sol.TotalEmissions}
	})
}
