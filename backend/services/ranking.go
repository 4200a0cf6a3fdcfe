// ABOUTME: Hub ranking by aggregate inbound flow
// ABOUTME: Column sums of a grid sorted descending, ties kept in airport order

package services

import (
	"sort"

	"github.com/markalston/route-economics/backend/models"
)

// RankHubs sums each destination column over all sources and sorts airports by
// the total, highest first. Equal totals keep the grid's airport order.
func RankHubs[T int | float64](grid *models.Grid[T]) []models.HubRank {
	ranks := make([]models.HubRank, 0, len(grid.Airports))
	for _, dest := range grid.Airports {
		var total T
		for _, src := range grid.Airports {
			if v, ok := grid.Get(src, dest); ok {
				total += v
			}
		}
		ranks = append(ranks, models.HubRank{Airport: dest, Total: float64(total)})
	}

	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].Total > ranks[j].Total
	})
	return ranks
}
