package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/surveyhub/surveyhub/internal/survey"
)

const pgForeignKeyViolation = "23503"

// SurveyPostgres is a PostgreSQL implementation of survey.Repository.
// Questions and answers are stored as JSONB, preserving order; responses
// live in their own table with a unique (survey_id, submitter_key) index,
// which is what makes AppendResponse's duplicate check atomic.
type SurveyPostgres struct {
	pool *pgxpool.Pool
}

// NewSurveyPostgres creates a PostgreSQL-backed survey store.
func NewSurveyPostgres(pool *pgxpool.Pool) *SurveyPostgres {
	return &SurveyPostgres{pool: pool}
}

func (p *SurveyPostgres) Insert(ctx context.Context, s *survey.Survey) error {
	query := `
		INSERT INTO surveys
			(id, title, description, creator_id, questions, is_public,
			 shareable_link, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := p.pool.Exec(ctx, query,
		s.ID, s.Title, s.Description, s.CreatorID, s.Questions, s.IsPublic,
		s.ShareableLink, s.StartDate, s.EndDate, s.CreatedAt, s.UpdatedAt,
	)

	return err
}

func (p *SurveyPostgres) GetByIDOrLink(ctx context.Context, identifier string) (*survey.Survey, error) {
	query := `
		SELECT id, title, description, creator_id, questions, is_public,
		       shareable_link, start_date, end_date, created_at, updated_at
		FROM surveys
		WHERE id = $1 OR shareable_link = $1
	`

	s, err := scanSurvey(p.pool.QueryRow(ctx, query, identifier))
	if err != nil {
		return nil, err
	}

	responses, err := p.loadResponses(ctx, []string{s.ID})
	if err != nil {
		return nil, err
	}

	s.Responses = responses[s.ID]

	return s, nil
}

func (p *SurveyPostgres) ListPublic(ctx context.Context) ([]*survey.Survey, error) {
	query := `
		SELECT id, title, description, creator_id, questions, is_public,
		       shareable_link, start_date, end_date, created_at, updated_at
		FROM surveys
		WHERE is_public
		ORDER BY created_at DESC
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Responses are deliberately not loaded for the public listing.
	return collectSurveys(rows)
}

func (p *SurveyPostgres) ListByCreator(ctx context.Context, creatorID string) ([]*survey.Survey, error) {
	query := `
		SELECT id, title, description, creator_id, questions, is_public,
		       shareable_link, start_date, end_date, created_at, updated_at
		FROM surveys
		WHERE creator_id = $1
		ORDER BY created_at DESC
	`

	rows, err := p.pool.Query(ctx, query, creatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	surveys, err := collectSurveys(rows)
	if err != nil {
		return nil, err
	}

	if len(surveys) == 0 {
		return surveys, nil
	}

	ids := make([]string, len(surveys))
	for i, s := range surveys {
		ids[i] = s.ID
	}

	responses, err := p.loadResponses(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, s := range surveys {
		s.Responses = responses[s.ID]
	}

	return surveys, nil
}

func (p *SurveyPostgres) Update(ctx context.Context, s *survey.Survey) error {
	query := `
		UPDATE surveys
		SET title = $2, description = $3, questions = $4, is_public = $5,
		    end_date = $6, updated_at = $7
		WHERE id = $1
	`

	tag, err := p.pool.Exec(ctx, query,
		s.ID, s.Title, s.Description, s.Questions, s.IsPublic, s.EndDate, s.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return survey.ErrNotFound
	}

	return nil
}

func (p *SurveyPostgres) Delete(ctx context.Context, id string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM surveys WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return survey.ErrNotFound
	}

	return nil
}

func (p *SurveyPostgres) AppendResponse(ctx context.Context, surveyID string, r *survey.Response) error {
	query := `
		INSERT INTO survey_responses (survey_id, submitter_key, answers, submitted_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (survey_id, submitter_key) DO NOTHING
	`

	tag, err := p.pool.Exec(ctx, query, surveyID, r.SubmitterKey, r.Answers, r.SubmittedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return survey.ErrNotFound
		}

		return err
	}

	if tag.RowsAffected() == 0 {
		return survey.ErrDuplicateSubmission
	}

	return nil
}

func (p *SurveyPostgres) loadResponses(ctx context.Context, surveyIDs []string) (map[string][]survey.Response, error) {
	query := `
		SELECT survey_id, submitter_key, answers, submitted_at
		FROM survey_responses
		WHERE survey_id = ANY($1)
		ORDER BY submitted_at, id
	`

	rows, err := p.pool.Query(ctx, query, surveyIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]survey.Response, len(surveyIDs))

	for rows.Next() {
		var (
			surveyID string
			r        survey.Response
		)

		if err := rows.Scan(&surveyID, &r.SubmitterKey, &r.Answers, &r.SubmittedAt); err != nil {
			return nil, err
		}

		out[surveyID] = append(out[surveyID], r)
	}

	return out, rows.Err()
}

func scanSurvey(row pgx.Row) (*survey.Survey, error) {
	var s survey.Survey

	err := row.Scan(
		&s.ID, &s.Title, &s.Description, &s.CreatorID, &s.Questions, &s.IsPublic,
		&s.ShareableLink, &s.StartDate, &s.EndDate, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, survey.ErrNotFound
		}

		return nil, err
	}

	return &s, nil
}

func collectSurveys(rows pgx.Rows) ([]*survey.Survey, error) {
	surveys := []*survey.Survey{}

	for rows.Next() {
		s, err := scanSurvey(rows)
		if err != nil {
			return nil, err
		}

		surveys = append(surveys, s)
	}

	return surveys, rows.Err()
}
