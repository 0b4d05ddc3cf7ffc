package model

import "sort"

// DefaultRelevanceThreshold is the minimum relevance for an argument to be grouped
const DefaultRelevanceThreshold = 0.6

// Group is a derived view of arguments sharing a topic at or above a relevance threshold
type Group struct {
	Topic     string     `json:"topic"`
	Relevance float64    `json:"relevance"`
	Arguments []Argument `json:"arguments"`
}

// GroupByTopic buckets arguments by topic, keeping only those at or above the
// relevance threshold. Groups are sorted by descending relevance; arguments keep
// their input order within a group.
func GroupByTopic(args []Argument, threshold float64) []Group {
	byTopic := make(map[string]*Group)
	var order []string

	for _, arg := range args {
		if arg.Relevance < threshold {
			continue
		}
		g, ok := byTopic[arg.Topic]
		if !ok {
			g = &Group{Topic: arg.Topic, Relevance: arg.Relevance}
			byTopic[arg.Topic] = g
			order = append(order, arg.Topic)
		}
		g.Arguments = append(g.Arguments, arg)
	}

	groups := make([]Group, 0, len(order))
	for _, topic := range order {
		groups = append(groups, *byTopic[topic])
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Relevance > groups[j].Relevance
	})

	return groups
}
