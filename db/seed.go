package db

import (
	"context"

	"github.com/squadmakers/chistes/internal/store"
	"github.com/squadmakers/chistes/pkg/logger"
)

var seedUsers = []string{"Manolito", "Pepe", "Isabel", "Pedro"}

var seedJokes = map[string][]string{
	"humor negro": {
		"¿Soy guapa, cariño?\". \"¡Eres como el Sol! Duele mirarte.",
		"¿Qué le dice un sepulturero a otro? ¿Te gusta mi trabajo? Es la muerte.",
		"Mi esposa lleva desaparecida durante dos semanas. La policía dijo que debía prepararme para lo peor. Así que le dije a mi nueva novia que era mejor que se fuera de casa",
	},
	"humor amarillo": {
		"¿Por qué los pájaros vuelan hacia el sur en invierno? Porque caminando tardarían mucho más.",
		"¿Qué hace un pez? Nada.",
		"¿Cuál es el café más malo del mundo? El que le pega a los cafes buenos.",
	},
	"chistes verdes": {
		"¿Qué le dice un semáforo a otro? No me mires, me estoy cambiando.",
		"¿Por qué las focas miran siempre hacia arriba? Porque abajo están los focos.",
		"¿Qué hace una abeja en el gimnasio? Zumba.",
	},
}

// Seed ensures the sample users, themes and joke catalog exist. It is safe to
// run on every start: users and themes go through the upserts, and each
// catalog joke is skipped when its (text, user, theme) triple already exists.
func Seed(ctx context.Context, s *store.Store) error {
	users := make([]store.UpsertResult, 0, len(seedUsers))
	for _, name := range seedUsers {
		user, err := s.UpsertUser(ctx, name)
		if err != nil {
			return err
		}
		users = append(users, user)
	}

	created := 0
	for themeName, texts := range seedJokes {
		theme, err := s.UpsertTheme(ctx, themeName)
		if err != nil {
			return err
		}

		for _, user := range users {
			for _, text := range texts {
				count, err := s.CountJokes(ctx, text, user.ID, theme.ID)
				if err != nil {
					return err
				}
				if count > 0 {
					continue
				}
				if _, err := s.CreateJoke(ctx, text, user.ID, theme.ID); err != nil {
					return err
				}
				created++
			}
		}
	}

	logger.Info("database seeded", logger.Int("jokes_created", created))
	return nil
}
