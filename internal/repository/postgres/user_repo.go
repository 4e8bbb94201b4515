package postgres

import (
	"context"
	"strings"

	"corp-social-backend/internal/domain"
	"corp-social-backend/pkg/calendar"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const userColumns = `id, email, first_name, last_name, middle_name, job_title, personal_email,
	corporate_phone_number, personal_phone_number, birthday_date, bio, photo, department,
	is_staff, is_active, date_joined`

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

func scanUser(row rowScanner) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.MiddleName, &u.JobTitle, &u.PersonalEmail,
		&u.CorporatePhoneNumber, &u.PersonalPhoneNumber, &u.BirthdayDate, &u.Bio, &u.Photo, &u.Department,
		&u.IsStaff, &u.IsActive, &u.DateJoined,
	)
	return u, err
}

func (r *userRepo) queryUsers(ctx context.Context, query string, args ...any) ([]domain.User, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "user")
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, mapError(err, "user")
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "user")
	}
	return users, nil
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (id, email, first_name, last_name, is_active, date_joined)
              VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(ctx, query, user.ID, user.Email, user.FirstName, user.LastName, user.IsActive, user.DateJoined)
	return mapError(err, "user")
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err, "user")
	}
	return &u, nil
}

func (r *userRepo) Fetch(ctx context.Context, limit, offset int) ([]domain.User, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE is_active`).Scan(&total); err != nil {
		return nil, 0, mapError(err, "user")
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE is_active
              ORDER BY date_joined DESC, id LIMIT $1 OFFSET $2`
	users, err := r.queryUsers(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepo) Update(ctx context.Context, user *domain.User) error {
	query := `UPDATE users SET
                first_name = $2, last_name = $3, middle_name = $4, job_title = $5,
                personal_email = $6, corporate_phone_number = $7, personal_phone_number = $8,
                birthday_date = $9, bio = $10, photo = $11, department = $12
              WHERE id = $1`
	tag, err := r.db.Exec(ctx, query,
		user.ID, user.FirstName, user.LastName, user.MiddleName, user.JobTitle,
		user.PersonalEmail, user.CorporatePhoneNumber, user.PersonalPhoneNumber,
		user.BirthdayDate, user.Bio, user.Photo, user.Department,
	)
	if err != nil {
		return mapError(err, "user")
	}
	if tag.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, "user")
	}
	return nil
}

// FetchByBirthdays matches on (month, day) only; the birth year is ignored.
func (r *userRepo) FetchByBirthdays(ctx context.Context, days []calendar.MonthDay) ([]domain.User, error) {
	if len(days) == 0 {
		return []domain.User{}, nil
	}

	months := make([]int64, len(days))
	dayNums := make([]int64, len(days))
	for i, d := range days {
		months[i] = int64(d.Month)
		dayNums[i] = int64(d.Day)
	}

	query := `SELECT ` + userColumns + ` FROM users
              WHERE is_active AND birthday_date IS NOT NULL
                AND (EXTRACT(MONTH FROM birthday_date)::int, EXTRACT(DAY FROM birthday_date)::int)
                    IN (SELECT m, d FROM unnest($1::int[], $2::int[]) AS w(m, d))`
	return r.queryUsers(ctx, query, pq.Array(months), pq.Array(dayNums))
}

func (r *userRepo) SearchAddressBook(ctx context.Context, search string, limit, offset int) ([]domain.User, int64, error) {
	search = strings.TrimSpace(search)
	where := `WHERE is_active AND ($1 = '' OR last_name ILIKE $2 OR job_title ILIKE $2)`
	pattern := containsPattern(search)

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users `+where, search, pattern).Scan(&total); err != nil {
		return nil, 0, mapError(err, "user")
	}

	query := `SELECT ` + userColumns + ` FROM users ` + where + `
              ORDER BY last_name, id LIMIT $3 OFFSET $4`
	users, err := r.queryUsers(ctx, query, search, pattern, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepo) CountPosts(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM posts WHERE author_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, mapError(err, "user")
	}
	return count, nil
}
