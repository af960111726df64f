package main

import (
	"context"
	"maps"
	"slices"

	"github.com/udisondev/eurekalink/internal/db"
	"github.com/udisondev/eurekalink/internal/model"
	"github.com/udisondev/eurekalink/internal/stats"
)

// statsStoreAdapter adapts db.StatsRepository to stats.Store.
type statsStoreAdapter struct {
	repo *db.StatsRepository
}

func (a *statsStoreAdapter) Load(ctx context.Context) (stats.Document, error) {
	rows, err := a.repo.LoadAll(ctx)
	if err != nil {
		return stats.NewDocument(), err
	}
	return rowsToDocument(rows), nil
}

func (a *statsStoreAdapter) Save(ctx context.Context, doc stats.Document) error {
	return a.repo.SaveAll(ctx, documentToRows(doc))
}

func rowsToDocument(rows db.StatsRows) stats.Document {
	doc := stats.NewDocument()
	for _, r := range rows.Coffers {
		t := uint16(r.Territory)
		if doc.Stats[t] == nil {
			doc.Stats[t] = make(map[uint32]int)
		}
		doc.Stats[t][uint32(r.Kind)] = int(r.Count)
	}
	for _, r := range rows.Episodes {
		doc.Episodes[uint16(r.Territory)] = int(r.Episodes)
	}
	doc.PendingKills = int(rows.PendingKills)

	// строки уже отсортированы по (territory, ordinal)
	for _, r := range rows.Locations {
		t := uint16(r.Territory)
		doc.Locations[t] = append(doc.Locations[t], model.NewLocation(r.X, r.Y, r.Z))
	}
	return doc
}

func documentToRows(doc stats.Document) db.StatsRows {
	rows := db.StatsRows{PendingKills: int32(doc.PendingKills)}

	for _, t := range slices.Sorted(maps.Keys(doc.Stats)) {
		for _, kind := range slices.Sorted(maps.Keys(doc.Stats[t])) {
			rows.Coffers = append(rows.Coffers, db.CofferStatRow{
				Territory: int16(t),
				Kind:      int64(kind),
				Count:     int32(doc.Stats[t][kind]),
			})
		}
	}
	for _, t := range slices.Sorted(maps.Keys(doc.Episodes)) {
		rows.Episodes = append(rows.Episodes, db.EpisodeRow{
			Territory: int16(t),
			Episodes:  int32(doc.Episodes[t]),
		})
	}
	for _, t := range slices.Sorted(maps.Keys(doc.Locations)) {
		for i, l := range doc.Locations[t] {
			rows.Locations = append(rows.Locations, db.LocationRow{
				Territory: int16(t),
				Ordinal:   int32(i),
				X:         l.X,
				Y:         l.Y,
				Z:         l.Z,
			})
		}
	}
	return rows
}
