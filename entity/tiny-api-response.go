package entity

import (
	"bytes"
	"encoding/json"
	"strconv"

	"tinyclient/internal/lib/envelope"
)

// Processing status markers used by the response envelope. Tiny often
// answers HTTP 200 for failed operations; the Status field is the only
// reliable failure signal.
const (
	StatusOK    = "OK"
	StatusError = "Erro"
)

// FlexInt decodes numeric fields that Tiny serializes inconsistently,
// sometimes as numbers and sometimes as quoted strings ("3", "32").
type FlexInt int64

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return err
	}
	*f = FlexInt(n)
	return nil
}

// Envelope is the uniform top-level object every response is nested
// inside. The inner payload stays raw so each endpoint can decode its
// own fields after the status check.
type Envelope struct {
	Retorno json.RawMessage `json:"retorno"`
}

// ResponseStatus carries the business-status fields present in every
// retorno payload.
type ResponseStatus struct {
	StatusProcessamento FlexInt     `json:"status_processamento"`
	Status              string      `json:"status"`
	CodigoErro          FlexInt     `json:"codigo_erro"`
	Erros               []ErrorItem `json:"erros"`
}

// ErrorItem is one provider error message.
type ErrorItem struct {
	Erro string `json:"erro"`
}

// CreatedVariation identifies a variation record created as a side
// effect of a product batch create.
type CreatedVariation struct {
	ID     FlexInt `json:"id"`
	Codigo string  `json:"codigo"`
}

func (CreatedVariation) WrapKey() string { return "variacao" }

// BatchPayload is the retorno payload of the batch create/update
// endpoints.
type BatchPayload struct {
	Registros envelope.Collection[BatchResult] `json:"registros"`
}

// BatchResult is the per-record outcome of a batch create/update call.
// Results carry the caller's sequence number back; callers must
// correlate by Sequencia, not by position, since the provider does not
// guarantee submission order.
type BatchResult struct {
	Sequencia  FlexInt                               `json:"sequencia"`
	Status     string                                `json:"status"`
	ID         FlexInt                               `json:"id,omitempty"`
	CodigoErro FlexInt                               `json:"codigo_erro,omitempty"`
	Erros      []ErrorItem                           `json:"erros,omitempty"`
	Variacoes  envelope.Collection[CreatedVariation] `json:"variacoes,omitempty"`
}

func (BatchResult) WrapKey() string { return "registro" }

// OK reports whether this record was accepted by the provider.
func (r BatchResult) OK() bool {
	return r.Status == StatusOK
}

// Messages flattens the provider error messages for this record.
func (r BatchResult) Messages() []string {
	msgs := make([]string, 0, len(r.Erros))
	for _, e := range r.Erros {
		msgs = append(msgs, e.Erro)
	}
	return msgs
}
