package store

import (
	"context"

	"events-api/internal/database"
	"events-api/internal/model"
)

// GetOrCreateArtifact 以 url 為唯一鍵，不存在時建立
func GetOrCreateArtifact(ctx context.Context, db database.Querier, url string) (*model.Artifact, error) {
	a := &model.Artifact{URL: url}
	if err := db.QueryRow(ctx,
		`INSERT INTO artifacts (url) VALUES ($1)
		 ON CONFLICT (url) DO UPDATE SET url = EXCLUDED.url
		 RETURNING id`,
		url,
	).Scan(&a.ID); err != nil {
		return nil, wrap("GetOrCreateArtifact", err)
	}
	return a, nil
}

// AttachArtifact 重複附加視為成功
func AttachArtifact(ctx context.Context, db database.Querier, eventID, artifactID int) error {
	if _, err := db.Exec(ctx,
		`INSERT INTO event_artifact (event_id, artifact_id) VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`,
		eventID,
		artifactID,
	); err != nil {
		return wrap("AttachArtifact", err)
	}
	return nil
}

func ListArtifacts(ctx context.Context, db database.Querier, eventID int) ([]model.Artifact, error) {
	rows, err := db.Query(ctx,
		`SELECT a.id, a.url
		 FROM artifacts a JOIN event_artifact ea ON ea.artifact_id = a.id
		 WHERE ea.event_id = $1
		 ORDER BY a.id`,
		eventID,
	)
	if err != nil {
		return nil, wrap("ListArtifacts", err)
	}
	defer rows.Close()

	var list []model.Artifact
	for rows.Next() {
		var a model.Artifact
		if err := rows.Scan(&a.ID, &a.URL); err != nil {
			return nil, wrap("ListArtifacts scan", err)
		}
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("ListArtifacts rows", err)
	}
	return list, nil
}
