package analytics

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists analytics events to PostgreSQL. One table per
// event type; creators' dashboards aggregate over these.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a PostgreSQL-backed analytics store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (p *PostgresStore) SaveSurveyCreated(ctx context.Context, event *SurveyCreatedEvent) error {
	query := `
		INSERT INTO analytics_survey_created
			(survey_id, creator_id, title, question_count, is_public, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := p.pool.Exec(ctx, query,
		event.SurveyID, event.CreatorID, event.Title,
		event.QuestionCount, event.IsPublic, event.CreatedAt,
	)

	return err
}

func (p *PostgresStore) SaveResponseSubmitted(ctx context.Context, event *ResponseSubmittedEvent) error {
	query := `
		INSERT INTO analytics_response_submitted
			(survey_id, answer_count, client_ip, user_agent, submitted_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := p.pool.Exec(ctx, query,
		event.SurveyID, event.AnswerCount, event.ClientIP,
		event.UserAgent, event.SubmittedAt,
	)

	return err
}

func (p *PostgresStore) SaveLinkResolved(ctx context.Context, event *LinkResolvedEvent) error {
	query := `
		INSERT INTO analytics_link_resolved
			(code, survey_id, target_path, client_ip, user_agent, referrer, resolved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := p.pool.Exec(ctx, query,
		event.Code, event.SurveyID, event.TargetPath,
		event.ClientIP, event.UserAgent, event.Referrer, event.ResolvedAt,
	)

	return err
}

// Compile-time check.
var _ Store = (*PostgresStore)(nil)
