package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"git.fiblab.net/general/common/v2/mongoutil"
	"git.fiblab.net/sim/ecorouting/router"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	CLASS_NODE = "node"
	CLASS_EDGE = "edge"
)

var ErrEmptyNetwork = errors.New("empty network")

// mongo中网络的存储格式，每个结点或边为一条文档
type networkDoc struct {
	Class string   `bson:"class"`
	Data  bson.Raw `bson:"data"`
}

// LoadNetwork 从文件或mongo读取网络
func LoadNetwork(ctx context.Context, mongoURI string, path *Path) (*router.Network, error) {
	if path == nil {
		return nil, fmt.Errorf("%w: no network path", ErrEmptyNetwork)
	}
	var (
		net *router.Network
		err error
	)
	if path.IsFile() {
		net, err = loadNetworkFile(path.File)
	} else {
		client := mongoutil.NewClient(mongoURI)
		defer client.Disconnect(context.Background())
		net, err = loadNetworkColl(ctx, client.Database(path.GetDb()).Collection(path.GetColl()))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load network from %s: %w", path, err)
	}
	if len(net.Nodes) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyNetwork, path)
	}
	log.Infof("network %s: %d nodes, %d edges", path, len(net.Nodes), len(net.Edges))
	return net, nil
}

func loadNetworkFile(file string) (*router.Network, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	net := &router.Network{}
	if err := json.Unmarshal(data, net); err != nil {
		return nil, err
	}
	return net, nil
}

func loadNetworkColl(ctx context.Context, coll *mongo.Collection) (*router.Network, error) {
	cur, err := coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	net := &router.Network{}
	for cur.Next(ctx) {
		var doc networkDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		switch doc.Class {
		case CLASS_NODE:
			var n router.NetworkNode
			if err := bson.Unmarshal(doc.Data, &n); err != nil {
				return nil, fmt.Errorf("bad node %v: %w", doc.Data, err)
			}
			net.Nodes = append(net.Nodes, n)
		case CLASS_EDGE:
			var e router.NetworkEdge
			if err := bson.Unmarshal(doc.Data, &e); err != nil {
				return nil, fmt.Errorf("bad edge %v: %w", doc.Data, err)
			}
			net.Edges = append(net.Edges, e)
		default:
			log.Warnf("unknown document class %q, skipped", doc.Class)
		}
	}
	return net, cur.Err()
}
