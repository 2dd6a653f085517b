package algo

import (
	"sort"

	"github.com/samber/lo"
)

const (
	// 同一时间窗口内，候选解需要在排放与步行上都好于已有解的比例
	EPSILON_IMPROVEMENT = 0.05
)

// Admit 尝试将cand加入有界的非支配集合set
// 不修改set本身，返回新的集合以及是否接受
//
// 1. 任一已有解弱支配cand（包括完全相同），拒绝
// 2. 时间相差小于epsilon的已有解视为同一桶，除非该解的排放与步行都比cand差5%以上，
//    否则cand视为冗余；桶内多个解时以最后一个比较结果为准
// 3. 去除被cand严格支配的已有解
// 4. 超出maxSize时保留最短时间、最低排放、最长步行三个冠军，其余按(时间, 排放)升序截断
func Admit(set []*Solution, cand *Solution, maxSize int, epsilon float64) ([]*Solution, bool) {
	for _, s := range set {
		if s.WeaklyDominates(cand) {
			return set, false
		}
	}

	redundant := false
	for _, s := range set {
		diff := s.TotalTime - cand.TotalTime
		if diff < 0 {
			diff = -diff
		}
		if diff >= epsilon {
			continue
		}
		// 不提前退出，最后一个落在窗口内的解决定结果
		worseEmissions := s.TotalEmissions >= cand.TotalEmissions*(1+EPSILON_IMPROVEMENT)
		worseWalk := s.TotalWalk <= cand.TotalWalk*(1-EPSILON_IMPROVEMENT)
		redundant = !(worseEmissions && worseWalk)
	}
	if redundant {
		return set, false
	}

	updated := make([]*Solution, 0, len(set)+1)
	updated = append(updated, cand)
	for _, s := range set {
		if !cand.Dominates(s) {
			updated = append(updated, s)
		}
	}
	if len(updated) <= maxSize {
		return updated, true
	}
	return keepDiverse(updated, maxSize), true
}

// 保留冠军后按(时间, 排放)填充
func keepDiverse(updated []*Solution, maxSize int) []*Solution {
	bestTime := lo.MinBy(updated, func(a, b *Solution) bool {
		return a.TotalTime < b.TotalTime
	})
	bestEmissions := lo.MinBy(updated, func(a, b *Solution) bool {
		return a.TotalEmissions < b.TotalEmissions
	})
	bestWalk := lo.MaxBy(updated, func(a, b *Solution) bool {
		return a.TotalWalk > b.TotalWalk
	})
	winners := lo.Uniq([]*Solution{bestTime, bestEmissions, bestWalk})
	if len(winners) >= maxSize {
		return winners[:maxSize]
	}
	others := lo.Filter(updated, func(s *Solution, _ int) bool {
		return !lo.Contains(winners, s)
	})
	sort.SliceStable(others, func(i, j int) bool {
		if others[i].TotalTime != others[j].TotalTime {
			return others[i].TotalTime < others[j].TotalTime
		}
		return others[i].TotalEmissions < others[j].TotalEmissions
	})
	return append(winners, others[:maxSize-len(winners)]...)
}
