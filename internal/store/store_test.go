package store

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/squadmakers/chistes/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, conn.AutoMigrate(&models.User{}, &models.Theme{}, &models.Joke{}))
	return New(conn)
}

func TestUpsertUserIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.UpsertUser(ctx, "Ana")
	require.NoError(t, err)
	assert.True(t, first.Created)
	assert.Equal(t, "Ana", first.Name)
	assert.NotZero(t, first.ID)

	second, err := s.UpsertUser(ctx, "Ana")
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, first.ID, second.ID)
}

func TestUpsertUserTrimsName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	trimmed, err := s.UpsertUser(ctx, "  Ana  ")
	require.NoError(t, err)
	assert.Equal(t, "Ana", trimmed.Name)

	same, err := s.UpsertUser(ctx, "Ana")
	require.NoError(t, err)
	assert.Equal(t, trimmed.ID, same.ID)
	assert.False(t, same.Created)
}

func TestUpsertUserConcurrentSameName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	const callers = 20
	results := make([]UpsertResult, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = s.UpsertUser(ctx, "Ana")
		}()
	}
	wg.Wait()

	created := 0
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, results[0].ID, results[i].ID)
		assert.Equal(t, "Ana", results[i].Name)
		if results[i].Created {
			created++
		}
	}
	assert.Equal(t, 1, created)

	var count int64
	require.NoError(t, s.db.Model(&models.User{}).Where("name = ?", "Ana").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUpsertThemeConcurrentSameName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	const callers = 20
	results := make([]UpsertResult, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = s.UpsertTheme(ctx, "humor negro")
		}()
	}
	wg.Wait()

	created := 0
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, results[0].ID, results[i].ID)
		if results[i].Created {
			created++
		}
	}
	assert.Equal(t, 1, created)

	var count int64
	require.NoError(t, s.db.Model(&models.Theme{}).Where("name = ?", "humor negro").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUpsertUserEmptyName(t *testing.T) {
	s := newTestStore(t)

	_, err := s.UpsertUser(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestUpsertThemeIndependentNamespace(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user, err := s.UpsertUser(ctx, "humor negro")
	require.NoError(t, err)
	assert.True(t, user.Created)

	theme, err := s.UpsertTheme(ctx, "humor negro")
	require.NoError(t, err)
	assert.True(t, theme.Created)
}

func TestCreateJokeMissingReference(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user, err := s.UpsertUser(ctx, "Ana")
	require.NoError(t, err)

	_, err = s.CreateJoke(ctx, "x", user.ID, 999)
	assert.ErrorIs(t, err, ErrMissingReference)

	_, err = s.CreateJoke(ctx, "x", 999, user.ID)
	assert.ErrorIs(t, err, ErrMissingReference)
}

func TestCreateJokeAllowsDuplicates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user, err := s.UpsertUser(ctx, "Ana")
	require.NoError(t, err)
	theme, err := s.UpsertTheme(ctx, "T1")
	require.NoError(t, err)

	first, err := s.CreateJoke(ctx, "misma broma", user.ID, theme.ID)
	require.NoError(t, err)
	second, err := s.CreateJoke(ctx, "misma broma", user.ID, theme.ID)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)

	count, err := s.CountJokes(ctx, "misma broma", user.ID, theme.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestUpdateJokeText(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user, err := s.UpsertUser(ctx, "Ana")
	require.NoError(t, err)
	theme, err := s.UpsertTheme(ctx, "T1")
	require.NoError(t, err)
	joke, err := s.CreateJoke(ctx, "antes", user.ID, theme.ID)
	require.NoError(t, err)

	updated, err := s.UpdateJokeText(ctx, joke.ID, "después")
	require.NoError(t, err)
	assert.Equal(t, joke.ID, updated.ID)
	assert.Equal(t, "después", updated.Text)

	var reread models.Joke
	require.NoError(t, s.db.First(&reread, joke.ID).Error)
	assert.Equal(t, "después", reread.Text)
	assert.Equal(t, joke.UserID, reread.UserID)
	assert.Equal(t, joke.ThemeID, reread.ThemeID)
	assert.WithinDuration(t, joke.CreatedAt, reread.CreatedAt, time.Second)
}

func TestUpdateJokeNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.UpdateJokeText(context.Background(), 42, "x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteJoke(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user, err := s.UpsertUser(ctx, "Ana")
	require.NoError(t, err)
	theme, err := s.UpsertTheme(ctx, "T1")
	require.NoError(t, err)
	joke, err := s.CreateJoke(ctx, "x", user.ID, theme.ID)
	require.NoError(t, err)

	require.NoError(t, s.DeleteJoke(ctx, joke.ID))

	assert.ErrorIs(t, s.DeleteJoke(ctx, joke.ID), ErrNotFound)
	_, err = s.UpdateJokeText(ctx, joke.ID, "y")
	assert.ErrorIs(t, err, ErrNotFound)
}

func seedFindFixture(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()

	ana, err := s.UpsertUser(ctx, "Ana")
	require.NoError(t, err)
	pepe, err := s.UpsertUser(ctx, "Pepe")
	require.NoError(t, err)
	negro, err := s.UpsertTheme(ctx, "humor negro")
	require.NoError(t, err)
	verde, err := s.UpsertTheme(ctx, "chistes verdes")
	require.NoError(t, err)

	_, err = s.CreateJoke(ctx, "ana-negro", ana.ID, negro.ID)
	require.NoError(t, err)
	_, err = s.CreateJoke(ctx, "ana-verde", ana.ID, verde.ID)
	require.NoError(t, err)
	_, err = s.CreateJoke(ctx, "pepe-negro", pepe.ID, negro.ID)
	require.NoError(t, err)
}

func jokeTexts(jokes []JokeView) []string {
	texts := make([]string, 0, len(jokes))
	for _, j := range jokes {
		texts = append(texts, j.Text)
	}
	sort.Strings(texts)
	return texts
}

func TestFindJokesByUser(t *testing.T) {
	s := newTestStore(t)
	seedFindFixture(t, s)

	jokes, err := s.FindJokesByUser(context.Background(), "Ana")
	require.NoError(t, err)
	assert.Equal(t, []string{"ana-negro", "ana-verde"}, jokeTexts(jokes))

	for _, j := range jokes {
		assert.Equal(t, "Ana", j.UserName)
		assert.NotEmpty(t, j.ThemeName)
		assert.False(t, j.CreatedAt.IsZero())
	}
}

func TestFindJokesByUserUnknownIsEmpty(t *testing.T) {
	s := newTestStore(t)
	seedFindFixture(t, s)

	jokes, err := s.FindJokesByUser(context.Background(), "Nadie")
	require.NoError(t, err)
	assert.Empty(t, jokes)
}

func TestFindJokesByTheme(t *testing.T) {
	s := newTestStore(t)
	seedFindFixture(t, s)

	jokes, err := s.FindJokesByTheme(context.Background(), "humor negro")
	require.NoError(t, err)
	assert.Equal(t, []string{"ana-negro", "pepe-negro"}, jokeTexts(jokes))
}

func TestFindJokesByUserAndThemeIsIntersection(t *testing.T) {
	s := newTestStore(t)
	seedFindFixture(t, s)
	ctx := context.Background()

	both, err := s.FindJokesByUserAndTheme(ctx, "Ana", "humor negro")
	require.NoError(t, err)
	assert.Equal(t, []string{"ana-negro"}, jokeTexts(both))

	byUser, err := s.FindJokesByUser(ctx, "Ana")
	require.NoError(t, err)
	byTheme, err := s.FindJokesByTheme(ctx, "humor negro")
	require.NoError(t, err)

	inUser := map[uint]bool{}
	for _, j := range byUser {
		inUser[j.ID] = true
	}
	intersection := []uint{}
	for _, j := range byTheme {
		if inUser[j.ID] {
			intersection = append(intersection, j.ID)
		}
	}

	require.Len(t, both, len(intersection))
	assert.Equal(t, intersection[0], both[0].ID)
}

func TestListUsersSortedByName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"Pedro", "Ana", "Manolito"} {
		_, err := s.UpsertUser(ctx, name)
		require.NoError(t, err)
	}

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)

	names := make([]string, 0, len(users))
	for _, u := range users {
		names = append(names, u.Name)
	}
	assert.Equal(t, []string{"Ana", "Manolito", "Pedro"}, names)
}

func TestListThemesSortedByName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"humor negro", "chistes verdes", "humor amarillo"} {
		_, err := s.UpsertTheme(ctx, name)
		require.NoError(t, err)
	}

	themes, err := s.ListThemes(ctx)
	require.NoError(t, err)

	names := make([]string, 0, len(themes))
	for _, th := range themes {
		names = append(names, th.Name)
	}
	assert.Equal(t, []string{"chistes verdes", "humor amarillo", "humor negro"}, names)
}
