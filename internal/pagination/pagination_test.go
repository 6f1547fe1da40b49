package pagination

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const pageSchema = `{
	"type": "object",
	"required": ["data"],
	"properties": {
		"data": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id"],
				"properties": {
					"id": {"type": "string"}
				}
			}
		},
		"next": {"type": ["string", "null"]}
	}
}`

type testPage struct {
	Data []testRecord `json:"data"`
	Next *string      `json:"next,omitempty"`
}

type testRecord struct {
	ID string `json:"id"`
}

// buildFetch cria um FetchFunc sintético com n páginas de dois registros cada
func buildFetch(t *testing.T, n int, calls *int) FetchFunc {
	pages := make([]testPage, 0, n)
	for i := 0; i < n; i++ {
		page := testPage{
			Data: []testRecord{
				{ID: fmt.Sprintf("p%d-r0", i)},
				{ID: fmt.Sprintf("p%d-r1", i)},
			},
		}
		if i < n-1 {
			next := fmt.Sprintf("cursor-%d", i+1)
			page.Next = &next
		}
		pages = append(pages, page)
	}

	return func(_ context.Context, cursor *string) ([]byte, *string, error) {
		*calls++

		if n == 0 {
			return []byte(`{"data": []}`), nil, nil
		}

		index := 0
		if cursor != nil {
			_, err := fmt.Sscanf(*cursor, "cursor-%d", &index)
			require.NoError(t, err)
		}

		raw, err := json.Marshal(pages[index])
		require.NoError(t, err)

		return raw, pages[index].Next, nil
	}
}

func mapTestPage(raw []byte) ([]testRecord, error) {
	page := testPage{}
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, err
	}
	return page.Data, nil
}

func TestWalk_Completude(t *testing.T) {
	schema := MustCompileSchema("page.json", pageSchema)

	tests := []struct {
		name  string
		pages int
	}{
		{name: "nenhuma página com dados", pages: 0},
		{name: "uma página", pages: 1},
		{name: "cinco páginas", pages: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			fetch := buildFetch(t, tt.pages, &calls)

			records, err := Walk(context.Background(), schema, fetch, mapTestPage)
			require.NoError(t, err)

			// Exatamente a concatenação de todas as páginas, na ordem,
			// sem duplicação e sem omissão
			assert.Len(t, records, tt.pages*2)
			for i, record := range records {
				expected := fmt.Sprintf("p%d-r%d", i/2, i%2)
				assert.Equal(t, expected, record.ID)
			}
		})
	}
}

func TestWalkPages_ProcessamentoIncremental(t *testing.T) {
	schema := MustCompileSchema("page.json", pageSchema)

	calls := 0
	fetch := buildFetch(t, 5, &calls)

	processedPages := 0
	processedRecords := make([]string, 0)

	total, err := WalkPages(context.Background(), schema, fetch, mapTestPage,
		func(_ context.Context, records []testRecord) error {
			processedPages++
			for _, record := range records {
				processedRecords = append(processedRecords, record.ID)
			}
			return nil
		})
	require.NoError(t, err)

	assert.Equal(t, 10, total)
	assert.Equal(t, 5, processedPages)
	assert.Equal(t, "p0-r0", processedRecords[0])
	assert.Equal(t, "p4-r1", processedRecords[9])
}

func TestWalk_PaginaInvalidaAbortaACaminhada(t *testing.T) {
	schema := MustCompileSchema("page.json", pageSchema)

	calls := 0
	fetch := func(_ context.Context, cursor *string) ([]byte, *string, error) {
		calls++
		if cursor == nil {
			next := "cursor-1"
			return []byte(`{"data": [{"id": "ok"}], "next": "cursor-1"}`), &next, nil
		}
		// Segunda página com shape errado: id numérico em vez de string
		return []byte(`{"data": [{"id": 123}]}`), nil, nil
	}

	_, err := Walk(context.Background(), schema, fetch, mapTestPage)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validação de schema")
	assert.Equal(t, 2, calls)
}

func TestWalk_ErroDeFetchPropagado(t *testing.T) {
	schema := MustCompileSchema("page.json", pageSchema)

	fetch := func(_ context.Context, cursor *string) ([]byte, *string, error) {
		return nil, nil, fmt.Errorf("timeout na API do canal")
	}

	_, err := Walk(context.Background(), schema, fetch, mapTestPage)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout na API do canal")
}
