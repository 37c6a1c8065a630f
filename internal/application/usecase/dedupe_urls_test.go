package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/urlkit/internal/application/usecase"
	"github.com/bnema/urlkit/internal/domain/entity"
)

func TestDedupeURLsUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewDedupeURLsUseCase()

	t.Run("normalized duplicates are dropped", func(t *testing.T) {
		out, err := uc.Execute(ctx, usecase.DedupeURLsInput{
			URLs: []string{
				"https://Site.ru/a/./b?y=2&x=1",
				"https://site.ru:443/a/b?x=1&y=2",
				"http://xn--80aswg.xn--p1ai/",
				"http://сайт.рф",
				"https://site.ru/a/b?x=1&y=2&utm_source=feed",
				"http://[::1",
			},
		})

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://site.ru/a/b?x=1&y=2",
			"http://сайт.рф",
			"https://site.ru/a/b?utm_source=feed&x=1&y=2",
		}, out.Unique)
		assert.Equal(t, 2, out.Duplicates)
		require.Len(t, out.Invalid, 1)
		assert.Equal(t, "http://[::1", out.Invalid[0].Raw)
	})

	t.Run("strip tracking and resolve against base", func(t *testing.T) {
		out, err := uc.Execute(ctx, usecase.DedupeURLsInput{
			URLs:          []string{"/a?utm_source=x", "https://site.ru/a", "a"},
			Base:          "https://site.ru/",
			StripTracking: true,
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"https://site.ru/a"}, out.Unique)
		assert.Equal(t, 2, out.Duplicates)
	})

	t.Run("invalid base", func(t *testing.T) {
		_, err := uc.Execute(ctx, usecase.DedupeURLsInput{URLs: []string{"/a"}, Base: "http://%zz"})
		assert.ErrorIs(t, err, entity.ErrInvalidArgument)
	})
}
