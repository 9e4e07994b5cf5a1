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
	"tinyclient/internal/lib/validate"
)

// ContactService exposes the contact endpoints: search, detail fetch
// and batch create/update.
type ContactService struct {
	api requester
	log *slog.Logger
}

func NewContactService(api requester, log *slog.Logger) *ContactService {
	return &ContactService{
		api: api,
		log: log.With(sl.Module("contacts")),
	}
}

// Search returns one page of contacts matching the free-text query and
// filter. The caller drives pagination by re-requesting with
// filter.Pagina incremented until reaching the returned TotalPages.
func (s *ContactService) Search(ctx context.Context, query string, filter entity.ContactFilter) (*entity.ContactPage, error) {
	params := []Param{{Key: "pesquisa", Value: query}}
	if filter.CPFCNPJ != "" {
		params = append(params, Param{Key: "cpf_cnpj", Value: filter.CPFCNPJ})
	}
	if filter.Situacao != "" {
		params = append(params, Param{Key: "situacao", Value: filter.Situacao})
	}
	if filter.IDVendedor != 0 {
		params = append(params, Param{Key: "idVendedor", Value: strconv.FormatInt(filter.IDVendedor, 10)})
	}
	if filter.NomeVendedor != "" {
		params = append(params, Param{Key: "nomeVendedor", Value: filter.NomeVendedor})
	}
	if filter.DataCriacao != "" {
		params = append(params, Param{Key: "dataCriacao", Value: filter.DataCriacao})
	}
	if filter.Pagina != 0 {
		params = append(params, Param{Key: "pagina", Value: strconv.Itoa(filter.Pagina)})
	}

	raw, err := s.api.Get(ctx, "contatos.pesquisa.php", params)
	if err != nil {
		return nil, err
	}

	var payload entity.ContactSearchPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode contact search: %w", err)
	}

	page := &entity.ContactPage{
		Contacts:   payload.Contatos,
		Page:       int(payload.Pagina),
		TotalPages: int(payload.NumeroPaginas),
	}

	s.log.Debug("contacts searched",
		slog.Int("count", len(page.Contacts)),
		slog.Int("page", page.Page),
		slog.Int("total_pages", page.TotalPages),
	)
	return page, nil
}

// GetByID fetches the full contact record, with its contact types and
// contact persons unwrapped into flat collections.
func (s *ContactService) GetByID(ctx context.Context, id int64) (*entity.Contact, error) {
	params := []Param{{Key: "id", Value: strconv.FormatInt(id, 10)}}

	raw, err := s.api.Get(ctx, "contato.obter.php", params)
	if err != nil {
		return nil, err
	}

	var payload entity.ContactPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode contact %d: %w", id, err)
	}
	return &payload.Contato, nil
}

// Create submits the whole batch in one request and returns one result
// per entry. Per-record failures come back as data: a successful call
// does not imply every entry succeeded, callers must check each
// result's outcome and correlate by sequence number.
func (s *ContactService) Create(ctx context.Context, entries []envelope.Entry[entity.Contact]) ([]entity.BatchResult, error) {
	return s.submit(ctx, "contato.incluir.php", entries)
}

// Update is structurally identical to Create against the update
// endpoint. Every entry must identify its record by id or codigo;
// the provider does not enforce this client-side, so we do.
func (s *ContactService) Update(ctx context.Context, entries []envelope.Entry[entity.Contact]) ([]entity.BatchResult, error) {
	for _, entry := range entries {
		if err := validate.Struct(&entry.Record); err != nil {
			return nil, fmt.Errorf("update entry %d: %w", entry.Sequencia, err)
		}
	}
	return s.submit(ctx, "contato.alterar.php", entries)
}

func (s *ContactService) submit(ctx context.Context, path string, entries []envelope.Entry[entity.Contact]) ([]entity.BatchResult, error) {
	body, err := envelope.WrapBatch(entries, "contatos")
	if err != nil {
		return nil, fmt.Errorf("wrap contact batch: %w", err)
	}

	fields := url.Values{}
	fields.Set("contato", string(body))

	raw, err := s.api.Post(ctx, path, fields)
	if err != nil {
		return nil, err
	}

	var payload entity.BatchPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode contact batch results: %w", err)
	}

	s.log.Debug("contact batch submitted",
		slog.String("path", path),
		slog.Int("entries", len(entries)),
		slog.Int("results", len(payload.Registros)),
	)
	return payload.Registros, nil
}
