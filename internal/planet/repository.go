package planet

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/lib/pq"

	"galaxy-server/internal/shared/database"
	"galaxy-server/internal/shared/errors"
)

const uniqueViolation = "23505"

const planetColumns = `name, faction, planet_type, description, population, status, image, vrchat_url,
	color, segmentum, position_x, position_y, position_z, editing, star_class, created_at, updated_at`

type Repository struct {
	db     *database.DB
	logger *slog.Logger
}

func NewRepository(db *database.DB, logger *slog.Logger) *Repository {
	logger.Debug("Initializing planet repository")

	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) getExecutor(tx *database.Tx) database.Executor {
	if tx != nil {
		return tx
	}
	return r.db
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPlanet(row scanner) (Planet, error) {
	var p Planet
	err := row.Scan(
		&p.Name,
		&p.Faction,
		&p.PlanetType,
		&p.Description,
		&p.Population,
		&p.Status,
		&p.Image,
		&p.VRChatURL,
		&p.Color,
		&p.Segmentum,
		&p.Position.X,
		&p.Position.Y,
		&p.Position.Z,
		&p.Editing,
		&p.StarClass,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return stderrors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func (r *Repository) List(ctx context.Context) ([]Planet, error) {
	logger := r.logger.With("component", "planet_repository", "operation", "list")
	logger.Debug("Listing planets")

	query := `SELECT ` + planetColumns + ` FROM planets ORDER BY created_at, name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("Failed to query planets", "error", err)
		return nil, fmt.Errorf("failed to query planets: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("Failed to close rows", "error", err)
		}
	}()

	planets := []Planet{}
	for rows.Next() {
		p, err := scanPlanet(rows)
		if err != nil {
			logger.Error("Failed to scan planet row", "error", err)
			return nil, fmt.Errorf("failed to scan planet: %w", err)
		}
		planets = append(planets, p)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, fmt.Errorf("error iterating planets: %w", err)
	}

	logger.Debug("Planets retrieved", "count", len(planets))
	return planets, nil
}

func (r *Repository) GetByName(ctx context.Context, name string) (*Planet, error) {
	query := `SELECT ` + planetColumns + ` FROM planets WHERE name = $1`

	p, err := scanPlanet(r.db.QueryRowContext(ctx, query, name))
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NotFoundf("planet %q not found", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get planet %q: %w", name, err)
	}
	return &p, nil
}

func (r *Repository) Create(ctx context.Context, p *Planet) error {
	return r.create(ctx, p, nil)
}

func (r *Repository) create(ctx context.Context, p *Planet, tx *database.Tx) error {
	exec := r.getExecutor(tx)

	logger := r.logger.With(
		"component", "planet_repository",
		"operation", "create",
		"planet", p.Name,
	)
	logger.Debug("Creating planet")

	query := `
		INSERT INTO planets (name, faction, planet_type, description, population, status, image, vrchat_url,
			color, segmentum, position_x, position_y, position_z, editing, star_class)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING created_at, updated_at`

	err := exec.QueryRowContext(ctx, query,
		p.Name, p.Faction, p.PlanetType, p.Description, p.Population, p.Status, p.Image, p.VRChatURL,
		p.Color, p.Segmentum, p.Position.X, p.Position.Y, p.Position.Z, p.Editing, p.StarClass,
	).Scan(&p.CreatedAt, &p.UpdatedAt)

	if isUniqueViolation(err) {
		return errors.Conflictf("planet %q already exists", p.Name)
	}
	if err != nil {
		logger.Error("Failed to create planet", "error", err)
		return fmt.Errorf("failed to create planet: %w", err)
	}

	logger.Debug("Planet created successfully")
	return nil
}

// Update replaces the planet stored under originalName, which may differ
// from p.Name when the planet is renamed.
func (r *Repository) Update(ctx context.Context, originalName string, p *Planet) error {
	logger := r.logger.With(
		"component", "planet_repository",
		"operation", "update",
		"planet", originalName,
	)

	query := `
		UPDATE planets SET name = $2, faction = $3, planet_type = $4, description = $5, population = $6,
			status = $7, image = $8, vrchat_url = $9, color = $10, segmentum = $11,
			position_x = $12, position_y = $13, position_z = $14, editing = $15, star_class = $16,
			updated_at = NOW()
		WHERE name = $1
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, originalName,
		p.Name, p.Faction, p.PlanetType, p.Description, p.Population, p.Status, p.Image, p.VRChatURL,
		p.Color, p.Segmentum, p.Position.X, p.Position.Y, p.Position.Z, p.Editing, p.StarClass,
	).Scan(&p.CreatedAt, &p.UpdatedAt)

	if stderrors.Is(err, sql.ErrNoRows) {
		return errors.NotFoundf("planet %q not found", originalName)
	}
	if isUniqueViolation(err) {
		return errors.Conflictf("planet %q already exists", p.Name)
	}
	if err != nil {
		logger.Error("Failed to update planet", "error", err)
		return fmt.Errorf("failed to update planet: %w", err)
	}

	logger.Debug("Planet updated", "new_name", p.Name)
	return nil
}

func (r *Repository) Delete(ctx context.Context, name string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM planets WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("failed to delete planet: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return errors.NotFoundf("planet %q not found", name)
	}
	return nil
}

func (r *Repository) DeleteAll(ctx context.Context) (int64, error) {
	return r.deleteAll(ctx, nil)
}

func (r *Repository) deleteAll(ctx context.Context, tx *database.Tx) (int64, error) {
	result, err := r.getExecutor(tx).ExecContext(ctx, `DELETE FROM planets`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete planets: %w", err)
	}
	return result.RowsAffected()
}

// ReplaceAll swaps the whole planet set in one transaction.
func (r *Repository) ReplaceAll(ctx context.Context, planets []Planet) error {
	logger := r.logger.With("component", "planet_repository", "operation", "replace_all", "count", len(planets))

	err := r.db.WithTx(ctx, func(tx *database.Tx) error {
		if _, err := r.deleteAll(ctx, tx); err != nil {
			return err
		}
		for i := range planets {
			if err := r.create(ctx, &planets[i], tx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to replace planets", "error", err)
		return err
	}

	logger.Info("Planets replaced")
	return nil
}

func (r *Repository) SetEditing(ctx context.Context, name string, editing bool) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE planets SET editing = $2, updated_at = NOW() WHERE name = $1`, name, editing)
	if err != nil {
		return fmt.Errorf("failed to set editing flag: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return errors.NotFoundf("planet %q not found", name)
	}
	return nil
}

func (r *Repository) SetAllEditing(ctx context.Context, editing bool) (int64, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE planets SET editing = $1, updated_at = NOW()`, editing)
	if err != nil {
		return 0, fmt.Errorf("failed to set editing flag: %w", err)
	}
	return result.RowsAffected()
}
