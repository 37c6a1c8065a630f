package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/urlkit/internal/application/usecase"
	"github.com/bnema/urlkit/internal/domain/entity"
)

func TestResolveURLsUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves in input order", func(t *testing.T) {
		uc := usecase.NewResolveURLsUseCase(2)

		out, err := uc.Execute(ctx, usecase.ResolveURLsInput{
			Base: "http://site.ru/path/to/",
			Refs: []string{"../new/path", "/abs", "?q=1", "https://other.ru/x", "http:/broken"},
		})

		require.NoError(t, err)
		require.Len(t, out.Results, 5)
		assert.Equal(t, "http://site.ru/path/new/path", out.Results[0].URL)
		assert.Equal(t, "http://site.ru/abs", out.Results[1].URL)
		assert.Equal(t, "http://site.ru/path/to/?q=1", out.Results[2].URL)
		assert.Equal(t, "https://other.ru/x", out.Results[3].URL)
		assert.ErrorIs(t, out.Results[4].Err, entity.ErrConfiguration)
		assert.Equal(t, "http:/broken", out.Results[4].Ref)
		assert.Equal(t, 1, out.Failed)
	})

	t.Run("ascii hosts", func(t *testing.T) {
		uc := usecase.NewResolveURLsUseCase(0)

		out, err := uc.Execute(ctx, usecase.ResolveURLsInput{
			Base:  "http://сайт.рф/",
			Refs:  []string{"page"},
			ASCII: true,
		})

		require.NoError(t, err)
		assert.Equal(t, "http://xn--80aswg.xn--p1ai/page", out.Results[0].URL)
	})

	t.Run("many references", func(t *testing.T) {
		uc := usecase.NewResolveURLsUseCase(4)

		refs := make([]string, 200)
		for i := range refs {
			refs[i] = fmt.Sprintf("item/%d", i)
		}

		out, err := uc.Execute(ctx, usecase.ResolveURLsInput{Base: "https://site.ru/list/", Refs: refs})

		require.NoError(t, err)
		for i, r := range out.Results {
			assert.Equal(t, fmt.Sprintf("https://site.ru/list/item/%d", i), r.URL)
		}
	})

	t.Run("invalid base", func(t *testing.T) {
		uc := usecase.NewResolveURLsUseCase(1)

		_, err := uc.Execute(ctx, usecase.ResolveURLsInput{Base: "https:", Refs: []string{"/x"}})

		assert.ErrorIs(t, err, entity.ErrInvalidArgument)
		assert.ErrorIs(t, err, entity.ErrConfiguration)
	})

	t.Run("canceled context", func(t *testing.T) {
		uc := usecase.NewResolveURLsUseCase(1)
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := uc.Execute(canceled, usecase.ResolveURLsInput{Base: "https://site.ru", Refs: []string{"/a", "/b"}})

		assert.ErrorIs(t, err, context.Canceled)
	})
}
