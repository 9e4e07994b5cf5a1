package entity

// Account is the registration data of the account the token belongs
// to, as returned by info.php.
type Account struct {
	RazaoSocial       string `json:"razao_social"`
	NomeFantasia      string `json:"fantasia"`
	CNPJ              string `json:"cnpj"`
	InscricaoEstadual string `json:"inscricao_estadual"`
	Regime            string `json:"regime_tributario"`
	Endereco          string `json:"endereco"`
	Numero            string `json:"numero"`
	Complemento       string `json:"complemento"`
	Bairro            string `json:"bairro"`
	Cidade            string `json:"cidade"`
	UF                string `json:"estado"`
	CEP               string `json:"cep"`
	Fone              string `json:"fone"`
	Email             string `json:"email"`
}

// AccountInfoPayload is the retorno payload of info.php: a singular
// nested record, not a wrapped collection.
type AccountInfoPayload struct {
	Conta Account `json:"conta"`
}
