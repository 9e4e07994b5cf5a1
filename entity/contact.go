package entity

import (
	"github.com/biter777/countries"

	"tinyclient/internal/lib/envelope"
)

// ContactType is one type label attached to a contact ("Cliente",
// "Fornecedor", ...). On the wire each label travels in its own
// single-key container.
type ContactType string

func (ContactType) WrapKey() string { return "tipo_contato" }

// ContactPerson is one person associated with a contact record.
type ContactPerson struct {
	ID       FlexInt `json:"id,omitempty"`
	Nome     string  `json:"nome"`
	Telefone string  `json:"telefone,omitempty"`
	Ramal    string  `json:"ramal,omitempty"`
	Email    string  `json:"email,omitempty"`
	Setor    string  `json:"departamento,omitempty"`
}

func (ContactPerson) WrapKey() string { return "pessoa_contato" }

// Contact is a Tiny contact record, used both as the summary shape
// returned by searches and as the full detail shape of obter/incluir.
// The nested collections are always present in write payloads, empty
// when the caller supplied nothing.
type Contact struct {
	ID           FlexInt `json:"id,omitempty"`
	Codigo       string  `json:"codigo,omitempty" validate:"required_without=ID"`
	Nome         string  `json:"nome"`
	Fantasia     string  `json:"fantasia,omitempty"`
	TipoPessoa   string  `json:"tipo_pessoa,omitempty"`
	CPFCNPJ      string  `json:"cpf_cnpj,omitempty"`
	IE           string  `json:"ie,omitempty"`
	RG           string  `json:"rg,omitempty"`
	Endereco     string  `json:"endereco,omitempty"`
	Numero       string  `json:"numero,omitempty"`
	Complemento  string  `json:"complemento,omitempty"`
	Bairro       string  `json:"bairro,omitempty"`
	CEP          string  `json:"cep,omitempty"`
	Cidade       string  `json:"cidade,omitempty"`
	UF           string  `json:"uf,omitempty"`
	Pais         string  `json:"pais,omitempty"`
	Fone         string  `json:"fone,omitempty"`
	Celular      string  `json:"celular,omitempty"`
	Email        string  `json:"email,omitempty"`
	Site         string  `json:"site,omitempty"`
	Situacao     string  `json:"situacao,omitempty"`
	Obs          string  `json:"obs,omitempty"`
	IDVendedor   FlexInt `json:"id_vendedor,omitempty"`
	NomeVendedor string  `json:"nome_vendedor,omitempty"`
	DataCriacao  string  `json:"data_criacao,omitempty"`

	TiposContato   envelope.Collection[ContactType]   `json:"tipos_contato"`
	PessoasContato envelope.Collection[ContactPerson] `json:"pessoas_contato"`
}

func (Contact) WrapKey() string { return "contato" }

// CountryCode resolves the contact's country to an ISO alpha-2 code,
// accepting either a code or a country name in Pais.
func (c *Contact) CountryCode() string {
	if c.Pais == "" {
		return ""
	}
	if len(c.Pais) == 2 {
		return c.Pais
	}
	country := countries.ByName(c.Pais)
	code := country.Alpha2()
	if len(code) == 2 {
		return code
	}
	return ""
}

// ContactFilter narrows a contact search. Zero values are omitted from
// the request.
type ContactFilter struct {
	CPFCNPJ      string
	Situacao     string
	IDVendedor   int64
	NomeVendedor string
	DataCriacao  string
	Pagina       int
}

// ContactSearchPayload is the retorno payload of contatos.pesquisa.php.
type ContactSearchPayload struct {
	Pagina        FlexInt                      `json:"pagina"`
	NumeroPaginas FlexInt                      `json:"numero_paginas"`
	Contatos      envelope.Collection[Contact] `json:"contatos"`
}

// ContactPayload is the retorno payload of contato.obter.php.
type ContactPayload struct {
	Contato Contact `json:"contato"`
}

// ContactPage is one page of search results. The provider exposes no
// cursor and no total-item count; callers iterate by re-requesting
// with an incremented page number until Page reaches TotalPages.
type ContactPage struct {
	Contacts   []Contact
	Page       int
	TotalPages int
}
