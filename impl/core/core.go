package core

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/time/rate"

	"tinyclient/entity"
	"tinyclient/internal/lib/envelope"
	"tinyclient/internal/lib/sl"
)

type Accounts interface {
	GetInfo(ctx context.Context) (*entity.Account, error)
}

type Contacts interface {
	Search(ctx context.Context, query string, filter entity.ContactFilter) (*entity.ContactPage, error)
	GetByID(ctx context.Context, id int64) (*entity.Contact, error)
	Create(ctx context.Context, entries []envelope.Entry[entity.Contact]) ([]entity.BatchResult, error)
	Update(ctx context.Context, entries []envelope.Entry[entity.Contact]) ([]entity.BatchResult, error)
}

type Products interface {
	Search(ctx context.Context, query string, filter entity.ProductFilter) (*entity.ProductPage, error)
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	Create(ctx context.Context, entries []envelope.Entry[entity.Product]) ([]entity.BatchResult, error)
}

// Core aggregates the resource services behind one entry point. It
// adds nothing to single calls; its value is the paginated fetch-all
// helpers, which pace page requests so sequential fetches do not
// hammer the provider. Individual resource calls stay unthrottled.
type Core struct {
	accounts Accounts
	contacts Contacts
	products Products
	limiter  *rate.Limiter
	log      *slog.Logger
}

func New(log *slog.Logger) *Core {
	return &Core{
		log:     log.With(sl.Module("core")),
		limiter: rate.NewLimiter(rate.Limit(2), 1),
	}
}

func (c *Core) SetAccounts(accounts Accounts) {
	c.accounts = accounts
}

func (c *Core) SetContacts(contacts Contacts) {
	c.contacts = contacts
}

func (c *Core) SetProducts(products Products) {
	c.products = products
}

// SetFetchLimit reconfigures the pacing of the fetch-all helpers.
func (c *Core) SetFetchLimit(perSecond float64, burst int) {
	c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
}

func (c *Core) AccountInfo(ctx context.Context) (*entity.Account, error) {
	if c.accounts == nil {
		return nil, fmt.Errorf("not set Accounts service")
	}
	return c.accounts.GetInfo(ctx)
}

func (c *Core) Contacts() Contacts {
	return c.contacts
}

func (c *Core) Products() Products {
	return c.products
}

// SearchAllContacts walks every result page for the query. Pages after
// the first are requested independently; the provider offers no
// snapshot isolation, so results may be inconsistent if the dataset
// mutates between page fetches.
func (c *Core) SearchAllContacts(ctx context.Context, query string, filter entity.ContactFilter) ([]entity.Contact, error) {
	if c.contacts == nil {
		return nil, fmt.Errorf("not set Contacts service")
	}

	var all []entity.Contact
	page := 1
	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		filter.Pagina = page
		result, err := c.contacts.Search(ctx, query, filter)
		if err != nil {
			return nil, fmt.Errorf("fetch contacts page %d: %w", page, err)
		}
		all = append(all, result.Contacts...)

		if page >= result.TotalPages {
			break
		}
		page++
	}

	c.log.Debug("all contact pages fetched",
		slog.Int("count", len(all)),
		slog.Int("pages", page),
	)
	return all, nil
}

// SearchAllProducts walks every result page for the query, with the
// same consistency caveat as SearchAllContacts.
func (c *Core) SearchAllProducts(ctx context.Context, query string, filter entity.ProductFilter) ([]entity.Product, error) {
	if c.products == nil {
		return nil, fmt.Errorf("not set Products service")
	}

	var all []entity.Product
	page := 1
	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		filter.Pagina = page
		result, err := c.products.Search(ctx, query, filter)
		if err != nil {
			return nil, fmt.Errorf("fetch products page %d: %w", page, err)
		}
		all = append(all, result.Products...)

		if page >= result.TotalPages {
			break
		}
		page++
	}

	c.log.Debug("all product pages fetched",
		slog.Int("count", len(all)),
		slog.Int("pages", page),
	)
	return all, nil
}

// CreateContacts submits the batch and logs every rejected record.
// Partial failures are data, not errors: the returned results must be
// checked per entry.
func (c *Core) CreateContacts(ctx context.Context, entries []envelope.Entry[entity.Contact]) ([]entity.BatchResult, error) {
	if c.contacts == nil {
		return nil, fmt.Errorf("not set Contacts service")
	}

	results, err := c.contacts.Create(ctx, entries)
	if err != nil {
		return nil, err
	}
	c.logFailures("contact", results)
	return results, nil
}

// CreateProducts submits the batch and logs every rejected record.
func (c *Core) CreateProducts(ctx context.Context, entries []envelope.Entry[entity.Product]) ([]entity.BatchResult, error) {
	if c.products == nil {
		return nil, fmt.Errorf("not set Products service")
	}

	results, err := c.products.Create(ctx, entries)
	if err != nil {
		return nil, err
	}
	c.logFailures("product", results)
	return results, nil
}

func (c *Core) logFailures(kind string, results []entity.BatchResult) {
	for _, r := range results {
		if r.OK() {
			continue
		}
		c.log.Warn("batch record rejected",
			slog.String("kind", kind),
			slog.Int64("sequencia", int64(r.Sequencia)),
			slog.Int64("codigo_erro", int64(r.CodigoErro)),
			slog.Any("erros", r.Messages()),
		)
	}
}
