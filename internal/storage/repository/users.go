package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/eventosguau/training-club/internal/models"
)

// ErrNotFound возвращается, когда запрошенная запись отсутствует в базе.
var ErrNotFound = errors.New("record not found")

// RegisterUser сохраняет нового пользователя в базу данных и возвращает его ID.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (int64, error) {
	const op = "storage.RegisterUser"
	if err := user.Validate(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int64
	query := `INSERT INTO users (email, username, password_hash, role, subscription,
			      status, dog_name)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Email, user.Username, user.PasswordHash, user.Role, user.Subscription,
		user.Status, user.DogName).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetUserByEmail возвращает полную запись пользователя по email,
// включая анкету и план из jsonb-полей.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT email, username, password_hash, role, subscription, status,
			      dog_name, frequency, profile, plan, created_at
			  FROM users
			  WHERE email = $1`
	row := s.DB.QueryRowContext(ctx, query, email)

	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// ReplaceRecord заменяет запись пользователя целиком (кроме учетных данных):
// подписка, статус, имя собаки, частота, анкета и план перезаписываются
// значениями из user. Частичных обновлений нет — поздняя запись побеждает.
func (s *Storage) ReplaceRecord(ctx context.Context, user models.User) error {
	const op = "storage.ReplaceRecord"
	if err := user.Validate(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	profileJSON, planJSON, err := marshalRecord(user)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `UPDATE users
			  SET subscription = $1,
			      status = $2,
			      dog_name = $3,
			      frequency = NULLIF($4, ''),
			      profile = $5,
			      plan = $6
			  WHERE email = $7`
	result, err := s.DB.ExecContext(ctx, query,
		user.Subscription, user.Status, user.DogName, string(user.Frequency),
		profileJSON, planJSON, user.Email)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// ListClients возвращает полные записи всех клиентов (роль user)
// для панели администратора.
func (s *Storage) ListClients(ctx context.Context) ([]*models.User, error) {
	const op = "storage.ListClients"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT email, username, password_hash, role, subscription, status,
			      dog_name, frequency, profile, plan, created_at
			  FROM users
			  WHERE role = 'user'
			  ORDER BY created_at`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetUserSummary возвращает краткое представление пользователя по ID
// для CRUD-границы /users.
func (s *Storage) GetUserSummary(ctx context.Context, id int64) (*models.UserSummary, error) {
	const op = "storage.GetUserSummary"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, email, username, dog_name, subscription, created_at
			  FROM users
			  WHERE id = $1`
	u := &models.UserSummary{}
	err := s.DB.QueryRowContext(ctx, query, id).Scan(
		&u.ID, &u.Email, &u.Username, &u.DogName, &u.Subscription, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// UpdateSubscription обновляет уровень подписки пользователя по ID.
func (s *Storage) UpdateSubscription(ctx context.Context, id int64, level models.SubscriptionLevel) error {
	const op = "storage.UpdateSubscription"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users SET subscription = $1 WHERE id = $2`
	result, err := s.DB.ExecContext(ctx, query, level, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// DeleteUser удаляет пользователя по ID.
func (s *Storage) DeleteUser(ctx context.Context, id int64) error {
	const op = "storage.DeleteUser"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM users WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	u := &models.User{}
	var frequency sql.NullString
	var profileJSON, planJSON []byte
	if err := row.Scan(&u.Email, &u.Username, &u.PasswordHash, &u.Role,
		&u.Subscription, &u.Status, &u.DogName, &frequency,
		&profileJSON, &planJSON, &u.CreatedAt); err != nil {
		return nil, err
	}
	if frequency.Valid {
		u.Frequency = models.Frequency(frequency.String)
	}
	if len(profileJSON) > 0 {
		var p models.DogProfile
		if err := json.Unmarshal(profileJSON, &p); err != nil {
			return nil, err
		}
		u.Profile = &p
	}
	if len(planJSON) > 0 {
		if err := json.Unmarshal(planJSON, &u.Plan); err != nil {
			return nil, err
		}
	}
	return u, nil
}

func marshalRecord(user models.User) (profileJSON, planJSON []byte, err error) {
	if user.Profile != nil {
		profileJSON, err = json.Marshal(user.Profile)
		if err != nil {
			return nil, nil, err
		}
	}
	if user.Plan != nil {
		planJSON, err = json.Marshal(user.Plan)
		if err != nil {
			return nil, nil, err
		}
	}
	return profileJSON, planJSON, nil
}
