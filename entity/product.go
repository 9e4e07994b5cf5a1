package entity

import "tinyclient/internal/lib/envelope"

// Attachment is one file attached to a product.
type Attachment struct {
	URL  string `json:"url"`
	Nome string `json:"nome,omitempty"`
}

func (Attachment) WrapKey() string { return "anexo" }

// ExternalImage is one externally hosted product image.
type ExternalImage struct {
	URL string `json:"url"`
}

func (ExternalImage) WrapKey() string { return "imagem_externa" }

// KitItem is one component of a kit product: a component product
// paired with its quantity.
type KitItem struct {
	IDProduto  FlexInt `json:"id_produto"`
	Quantidade float64 `json:"quantidade"`
}

func (KitItem) WrapKey() string { return "item" }

// StructureItem is one raw-material line of a manufactured product's
// bill of materials.
type StructureItem struct {
	IDProduto  FlexInt `json:"id_produto"`
	Quantidade float64 `json:"quantidade"`
}

func (StructureItem) WrapKey() string { return "item" }

// ProductionStage is one step of a manufactured product's production
// process.
type ProductionStage struct {
	Descricao string  `json:"descricao"`
	Ordem     FlexInt `json:"ordem,omitempty"`
}

func (ProductionStage) WrapKey() string { return "etapa" }

// EcommerceMapping ties a product or variation to its listing on one
// e-commerce platform.
type EcommerceMapping struct {
	IDEcommerce   FlexInt `json:"id_ecommerce"`
	IDMapeamento  string  `json:"id_mapeamento,omitempty"`
	SKUMapeamento string  `json:"sku_mapeamento,omitempty"`
}

func (EcommerceMapping) WrapKey() string { return "mapeamento" }

// Variation is one variation of a product. Each variation carries its
// own e-commerce mappings, one nesting level below the product's.
type Variation struct {
	ID           FlexInt           `json:"id,omitempty"`
	Codigo       string            `json:"codigo"`
	Preco        float64           `json:"preco,omitempty"`
	EstoqueAtual float64           `json:"estoque_atual,omitempty"`
	GTIN         string            `json:"gtin,omitempty"`
	Grade        map[string]string `json:"grade,omitempty"`

	Mapeamentos envelope.Collection[EcommerceMapping] `json:"mapeamentos"`
}

func (Variation) WrapKey() string { return "variacao" }

// Product is a Tiny product record. Searches return it with only the
// scalar summary fields filled in; obter and incluir use the full
// shape including the nested collections, which are always present in
// write payloads even when empty.
type Product struct {
	ID               FlexInt `json:"id,omitempty"`
	Codigo           string  `json:"codigo,omitempty" validate:"required_without=ID"`
	Nome             string  `json:"nome"`
	Unidade          string  `json:"unidade,omitempty"`
	Preco            float64 `json:"preco,omitempty"`
	PrecoPromocional float64 `json:"preco_promocional,omitempty"`
	PrecoCusto       float64 `json:"preco_custo,omitempty"`
	NCM              string  `json:"ncm,omitempty"`
	Origem           string  `json:"origem,omitempty"`
	GTIN             string  `json:"gtin,omitempty"`
	PesoLiquido      float64 `json:"peso_liquido,omitempty"`
	PesoBruto        float64 `json:"peso_bruto,omitempty"`
	EstoqueMinimo    float64 `json:"estoque_minimo,omitempty"`
	EstoqueMaximo    float64 `json:"estoque_maximo,omitempty"`
	EstoqueAtual     float64 `json:"estoque_atual,omitempty"`
	Situacao         string  `json:"situacao,omitempty"`
	Tipo             string  `json:"tipo,omitempty"`
	Classe           string  `json:"classe_produto,omitempty"`
	Marca            string  `json:"marca,omitempty"`
	DataCriacao      string  `json:"data_criacao,omitempty"`

	Anexos          envelope.Collection[Attachment]       `json:"anexos"`
	ImagensExternas envelope.Collection[ExternalImage]    `json:"imagens_externas"`
	Kit             envelope.Collection[KitItem]          `json:"kit"`
	Estrutura       envelope.Collection[StructureItem]    `json:"estrutura"`
	EtapasProducao  envelope.Collection[ProductionStage]  `json:"etapas_producao"`
	Mapeamentos     envelope.Collection[EcommerceMapping] `json:"mapeamentos"`
	Variacoes       envelope.Collection[Variation]        `json:"variacoes"`
}

func (Product) WrapKey() string { return "produto" }

// ProductFilter narrows a product search. Zero values are omitted from
// the request.
type ProductFilter struct {
	Situacao     string
	IDTag        int64
	IDListaPreco int64
	GTIN         string
	DataCriacao  string
	Pagina       int
}

// ProductSearchPayload is the retorno payload of produtos.pesquisa.php.
type ProductSearchPayload struct {
	Pagina        FlexInt                      `json:"pagina"`
	NumeroPaginas FlexInt                      `json:"numero_paginas"`
	Produtos      envelope.Collection[Product] `json:"produtos"`
}

// ProductPayload is the retorno payload of produto.obter.php.
type ProductPayload struct {
	Produto Product `json:"produto"`
}

// ProductPage is one page of product search results.
type ProductPage struct {
	Products   []Product
	Page       int
	TotalPages int
}
