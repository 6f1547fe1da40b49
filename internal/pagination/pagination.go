package pagination

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/sirupsen/logrus"
)

// FetchFunc busca uma página da API do canal. cursor == nil pede a primeira
// página; o retorno next == nil encerra a caminhada.
type FetchFunc func(ctx context.Context, cursor *string) (raw []byte, next *string, err error)

// MapFunc converte o corpo bruto já validado de uma página em registros tipados
type MapFunc[T any] func(raw []byte) ([]T, error)

// ProcessFunc processa os registros de uma página; usado quando as páginas
// precisam ser persistidas incrementalmente em vez de acumuladas em memória
type ProcessFunc[T any] func(ctx context.Context, records []T) error

// MustCompileSchema compila um JSON Schema de página na inicialização do
// adapter. Um schema inválido é erro de programação, não de execução.
func MustCompileSchema(name, schemaJSON string) *jsonschema.Schema {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(schemaJSON))
	if err != nil {
		panic(fmt.Sprintf("schema %s inválido: %v", name, err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, doc); err != nil {
		panic(fmt.Sprintf("erro ao registrar schema %s: %v", name, err))
	}

	schema, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("erro ao compilar schema %s: %v", name, err))
	}

	return schema
}

// Walk percorre todas as páginas e retorna a concatenação dos registros
// mapeados, na ordem das páginas. Uma página que não passa no schema aborta a
// caminhada inteira: perda parcial silenciosa de dados não é aceitável.
func Walk[T any](
	ctx context.Context,
	schema *jsonschema.Schema,
	fetch FetchFunc,
	mapPage MapFunc[T],
) ([]T, error) {
	records := make([]T, 0)

	_, err := walk(ctx, schema, fetch, mapPage, func(_ context.Context, pageRecords []T) error {
		records = append(records, pageRecords...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// WalkPages percorre todas as páginas invocando process por página, sem
// acumular os registros em memória. Retorna o total de registros processados.
func WalkPages[T any](
	ctx context.Context,
	schema *jsonschema.Schema,
	fetch FetchFunc,
	mapPage MapFunc[T],
	process ProcessFunc[T],
) (int, error) {
	return walk(ctx, schema, fetch, mapPage, process)
}

func walk[T any](
	ctx context.Context,
	schema *jsonschema.Schema,
	fetch FetchFunc,
	mapPage MapFunc[T],
	process ProcessFunc[T],
) (int, error) {
	total := 0
	pageNumber := 0

	var cursor *string

	for {
		if err := ctx.Err(); err != nil {
			return total, errors.Wrap(err, "caminhada de paginação cancelada")
		}

		raw, next, err := fetch(ctx, cursor)
		if err != nil {
			return total, errors.Wrapf(err, "erro ao buscar página %d", pageNumber)
		}

		if err := validatePage(schema, raw); err != nil {
			logrus.WithFields(logrus.Fields{
				"page":        pageNumber,
				"raw_payload": string(raw),
			}).Error("Página reprovada na validação de schema")
			return total, errors.Wrapf(err, "página %d reprovada na validação de schema", pageNumber)
		}

		pageRecords, err := mapPage(raw)
		if err != nil {
			return total, errors.Wrapf(err, "erro ao mapear registros da página %d", pageNumber)
		}

		if len(pageRecords) > 0 {
			if err := process(ctx, pageRecords); err != nil {
				return total, errors.Wrapf(err, "erro ao processar registros da página %d", pageNumber)
			}
			total += len(pageRecords)
		}

		if next == nil || *next == "" {
			return total, nil
		}

		cursor = next
		pageNumber++
	}
}

func validatePage(schema *jsonschema.Schema, raw []byte) error {
	if schema == nil {
		return nil
	}

	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return errors.Wrap(err, "corpo da página não é JSON válido")
	}

	return schema.Validate(instance)
}
