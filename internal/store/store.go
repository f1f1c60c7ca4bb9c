package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/squadmakers/chistes/internal/models"
	"gorm.io/gorm"
)

// Store owns all reads and writes against users, themes and jokes.
type Store struct {
	db *gorm.DB
}

func New(conn *gorm.DB) *Store {
	return &Store{db: conn}
}

// UpsertResult reports the row an upsert resolved to and whether it was inserted.
type UpsertResult struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Created bool   `json:"created"`
}

// JokeView is a joke joined with its user and theme names.
type JokeView struct {
	ID        uint      `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UserName  string    `json:"user_name"`
	ThemeName string    `json:"theme_name"`
}

// EntityView is the id/name projection used by the user and theme listings.
type EntityView struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// UpsertUser returns the user with the given name, inserting it first if absent.
// Safe under concurrent calls for the same name: a duplicate-key failure from
// the engine is retried as a read.
func (s *Store) UpsertUser(ctx context.Context, name string) (UpsertResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return UpsertResult{}, ErrEmptyName
	}

	var user models.User
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&user).Error
	if err == nil {
		return UpsertResult{ID: user.ID, Name: user.Name}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return UpsertResult{}, err
	}

	user = models.User{Name: name}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race; the row exists now.
			if err := s.db.WithContext(ctx).Where("name = ?", name).First(&user).Error; err != nil {
				return UpsertResult{}, err
			}
			return UpsertResult{ID: user.ID, Name: user.Name}, nil
		}
		return UpsertResult{}, err
	}

	return UpsertResult{ID: user.ID, Name: user.Name, Created: true}, nil
}

// UpsertTheme has the same contract as UpsertUser over the themes table.
func (s *Store) UpsertTheme(ctx context.Context, name string) (UpsertResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return UpsertResult{}, ErrEmptyName
	}

	var theme models.Theme
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&theme).Error
	if err == nil {
		return UpsertResult{ID: theme.ID, Name: theme.Name}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return UpsertResult{}, err
	}

	theme = models.Theme{Name: name}
	if err := s.db.WithContext(ctx).Create(&theme).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if err := s.db.WithContext(ctx).Where("name = ?", name).First(&theme).Error; err != nil {
				return UpsertResult{}, err
			}
			return UpsertResult{ID: theme.ID, Name: theme.Name}, nil
		}
		return UpsertResult{}, err
	}

	return UpsertResult{ID: theme.ID, Name: theme.Name, Created: true}, nil
}

// CreateJoke inserts a new joke. The referenced user and theme are verified
// inside the same transaction so the insert never dangles. There is no dedup:
// the same (text, user, theme) triple may be inserted more than once.
func (s *Store) CreateJoke(ctx context.Context, text string, userID, themeID uint) (models.Joke, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Joke{}, ErrEmptyText
	}

	var joke models.Joke
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrMissingReference
		}
		if err := tx.Model(&models.Theme{}).Where("id = ?", themeID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrMissingReference
		}

		joke = models.Joke{
			Text:      text,
			UserID:    userID,
			ThemeID:   themeID,
			CreatedAt: time.Now(),
		}
		return tx.Create(&joke).Error
	})
	if err != nil {
		return models.Joke{}, err
	}

	return joke, nil
}

// UpdateJokeText replaces the text of an existing joke. Everything else,
// created_at included, is left untouched.
func (s *Store) UpdateJokeText(ctx context.Context, id uint, text string) (models.Joke, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Joke{}, ErrEmptyText
	}

	var joke models.Joke
	if err := s.db.WithContext(ctx).First(&joke, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Joke{}, ErrNotFound
		}
		return models.Joke{}, err
	}

	if err := s.db.WithContext(ctx).Model(&joke).Update("text", text).Error; err != nil {
		return models.Joke{}, err
	}

	joke.Text = text
	return joke, nil
}

// DeleteJoke permanently removes a joke by id.
func (s *Store) DeleteJoke(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Joke{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindJokesByUser returns the jokes of the named user. An unknown user is not
// an error, just an empty result.
func (s *Store) FindJokesByUser(ctx context.Context, userName string) ([]JokeView, error) {
	return s.findJokes(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("users.name = ?", userName)
	})
}

// FindJokesByTheme returns the jokes of the named theme.
func (s *Store) FindJokesByTheme(ctx context.Context, themeName string) ([]JokeView, error) {
	return s.findJokes(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("themes.name = ?", themeName)
	})
}

// FindJokesByUserAndTheme applies both filters as an AND.
func (s *Store) FindJokesByUserAndTheme(ctx context.Context, userName, themeName string) ([]JokeView, error) {
	return s.findJokes(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("users.name = ? AND themes.name = ?", userName, themeName)
	})
}

func (s *Store) findJokes(ctx context.Context, filter func(*gorm.DB) *gorm.DB) ([]JokeView, error) {
	jokes := []JokeView{}
	query := s.db.WithContext(ctx).
		Model(&models.Joke{}).
		Select("jokes.id, jokes.text, jokes.created_at, users.name AS user_name, themes.name AS theme_name").
		Joins("JOIN users ON users.id = jokes.user_id").
		Joins("JOIN themes ON themes.id = jokes.theme_id")

	if err := filter(query).Scan(&jokes).Error; err != nil {
		return nil, err
	}
	return jokes, nil
}

// ListUsers returns all users ordered by name.
func (s *Store) ListUsers(ctx context.Context) ([]EntityView, error) {
	users := []EntityView{}
	err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Select("id, name").
		Order("name ASC").
		Scan(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// ListThemes returns all themes ordered by name.
func (s *Store) ListThemes(ctx context.Context) ([]EntityView, error) {
	themes := []EntityView{}
	err := s.db.WithContext(ctx).
		Model(&models.Theme{}).
		Select("id, name").
		Order("name ASC").
		Scan(&themes).Error
	if err != nil {
		return nil, err
	}
	return themes, nil
}

// CountJokes reports how many jokes match the exact (text, user, theme)
// triple. Seeding uses it to skip catalog entries that already exist.
func (s *Store) CountJokes(ctx context.Context, text string, userID, themeID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Joke{}).
		Where("text = ? AND user_id = ? AND theme_id = ?", text, userID, themeID).
		Count(&count).Error
	return count, err
}
