package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"tinyclient/entity"
	"tinyclient/internal/lib/envelope"
	"tinyclient/internal/lib/sl"
)

// ProductService exposes the product endpoints. Products carry the
// deepest nesting of the API: attachments, external images, kit and
// structure items, production stages, e-commerce mappings and
// variations, with each variation holding its own mappings.
type ProductService struct {
	api requester
	log *slog.Logger
}

func NewProductService(api requester, log *slog.Logger) *ProductService {
	return &ProductService{
		api: api,
		log: log.With(sl.Module("products")),
	}
}

// Search returns one page of product summaries matching the free-text
// query and filter.
func (s *ProductService) Search(ctx context.Context, query string, filter entity.ProductFilter) (*entity.ProductPage, error) {
	params := []Param{{Key: "pesquisa", Value: query}}
	if filter.Situacao != "" {
		params = append(params, Param{Key: "situacao", Value: filter.Situacao})
	}
	if filter.IDTag != 0 {
		params = append(params, Param{Key: "idTag", Value: strconv.FormatInt(filter.IDTag, 10)})
	}
	if filter.IDListaPreco != 0 {
		params = append(params, Param{Key: "idListaPreco", Value: strconv.FormatInt(filter.IDListaPreco, 10)})
	}
	if filter.GTIN != "" {
		params = append(params, Param{Key: "gtin", Value: filter.GTIN})
	}
	if filter.DataCriacao != "" {
		params = append(params, Param{Key: "dataCriacao", Value: filter.DataCriacao})
	}
	if filter.Pagina != 0 {
		params = append(params, Param{Key: "pagina", Value: strconv.Itoa(filter.Pagina)})
	}

	raw, err := s.api.Get(ctx, "produtos.pesquisa.php", params)
	if err != nil {
		return nil, err
	}

	var payload entity.ProductSearchPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode product search: %w", err)
	}

	page := &entity.ProductPage{
		Products:   payload.Produtos,
		Page:       int(payload.Pagina),
		TotalPages: int(payload.NumeroPaginas),
	}

	s.log.Debug("products searched",
		slog.Int("count", len(page.Products)),
		slog.Int("page", page.Page),
		slog.Int("total_pages", page.TotalPages),
	)
	return page, nil
}

// GetByID fetches the full product record with every nested collection
// unwrapped, including each variation's own e-commerce mappings.
// Collections the record does not have come back empty, never absent.
func (s *ProductService) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	params := []Param{{Key: "id", Value: strconv.FormatInt(id, 10)}}

	raw, err := s.api.Get(ctx, "produto.obter.php", params)
	if err != nil {
		return nil, err
	}

	var payload entity.ProductPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode product %d: %w", id, err)
	}
	return &payload.Produto, nil
}

// Create submits the whole batch in one request. Every nested
// collection of every record is wrapped independently, empty ones
// included, so the request shape stays uniform. Results may carry the
// ids of variations created alongside the product; per-record failures
// come back as data, correlated by sequence number.
func (s *ProductService) Create(ctx context.Context, entries []envelope.Entry[entity.Product]) ([]entity.BatchResult, error) {
	body, err := envelope.WrapBatch(entries, "produtos")
	if err != nil {
		return nil, fmt.Errorf("wrap product batch: %w", err)
	}

	fields := url.Values{}
	fields.Set("produto", string(body))

	raw, err := s.api.Post(ctx, "produto.incluir.php", fields)
	if err != nil {
		return nil, err
	}

	var payload entity.BatchPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode product batch results: %w", err)
	}

	s.log.Debug("product batch submitted",
		slog.Int("entries", len(entries)),
		slog.Int("results", len(payload.Registros)),
	)
	return payload.Registros, nil
}
