package services

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"tinyclient/internal/config"
	apierrors "tinyclient/internal/lib/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(token, baseURL string) *config.Config {
	conf := &config.Config{}
	conf.Tiny.Token = token
	conf.Tiny.BaseURL = baseURL
	return conf
}

func TestNewTinyService_MissingToken(t *testing.T) {
	_, err := NewTinyService(testConfig("", "https://api.tiny.com.br/api2"), testLogger())
	if err != apierrors.ErrMissingToken {
		t.Errorf("NewTinyService with empty token = %v, want ErrMissingToken", err)
	}
}

func TestEndpoint_ParameterOrder(t *testing.T) {
	service, err := NewTinyService(testConfig("abc123", "https://api.tiny.com.br/api2"), testLogger())
	if err != nil {
		t.Fatalf("NewTinyService returned error: %v", err)
	}

	got := service.endpoint("contatos.pesquisa.php", []Param{
		{Key: "pesquisa", Value: "mouse"},
		{Key: "situacao", Value: "A"},
		{Key: "pagina", Value: "2"},
	})
	want := "https://api.tiny.com.br/api2/contatos.pesquisa.php" +
		"?token=abc123&formato=json&pesquisa=mouse&situacao=A&pagina=2"
	if got != want {
		t.Errorf("endpoint = %q, want %q", got, want)
	}
}

func TestGet_BusinessErrorOverHTTPStatus(t *testing.T) {
	// HTTP 200 with a failure status marker in the payload must raise
	// an APIError. The HTTP status is never the failure signal.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"retorno":{"status_processamento":1,"status":"Erro","codigo_erro":32,"erros":[{"erro":"Invalid token"}]}}`))
	}))
	defer server.Close()

	service, err := NewTinyService(testConfig("bad-token", server.URL), testLogger())
	if err != nil {
		t.Fatalf("NewTinyService returned error: %v", err)
	}

	_, err = service.Get(context.Background(), "info.php", nil)
	if err == nil {
		t.Fatal("Get should fail on a business error")
	}

	apiErr, ok := apierrors.IsAPIError(err)
	if !ok {
		t.Fatalf("error should be an APIError, got %T: %v", err, err)
	}
	if apiErr.CodigoErro != 32 {
		t.Errorf("CodigoErro = %d, want 32", apiErr.CodigoErro)
	}
	if apiErr.StatusProcessamento != 1 {
		t.Errorf("StatusProcessamento = %d, want 1", apiErr.StatusProcessamento)
	}
	if len(apiErr.Erros) != 1 || apiErr.Erros[0] != "Invalid token" {
		t.Errorf("Erros = %v, want [Invalid token]", apiErr.Erros)
	}
}

func TestGet_StringEncodedStatusCodes(t *testing.T) {
	// Tiny sometimes quotes its numeric fields.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"retorno":{"status_processamento":"2","status":"Erro","codigo_erro":"20","erros":[{"erro":"consulta invalida"}]}}`))
	}))
	defer server.Close()

	service, _ := NewTinyService(testConfig("tok", server.URL), testLogger())

	_, err := service.Get(context.Background(), "contatos.pesquisa.php", nil)
	apiErr, ok := apierrors.IsAPIError(err)
	if !ok {
		t.Fatalf("error should be an APIError, got %T: %v", err, err)
	}
	if apiErr.CodigoErro != 20 || apiErr.StatusProcessamento != 2 {
		t.Errorf("codes = (%d, %d), want (20, 2)", apiErr.CodigoErro, apiErr.StatusProcessamento)
	}
}

func TestGet_NonJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>502 Bad Gateway</html>"))
	}))
	defer server.Close()

	service, _ := NewTinyService(testConfig("tok", server.URL), testLogger())

	_, err := service.Get(context.Background(), "info.php", nil)
	parseErr, ok := apierrors.IsParseError(err)
	if !ok {
		t.Fatalf("error should be a ParseError, got %T: %v", err, err)
	}
	if parseErr.HTTPStatus != http.StatusBadGateway {
		t.Errorf("HTTPStatus = %d, want %d", parseErr.HTTPStatus, http.StatusBadGateway)
	}
}

func TestGet_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	service, _ := NewTinyService(testConfig("tok", server.URL), testLogger())

	_, err := service.Get(context.Background(), "info.php", nil)
	if err == nil {
		t.Fatal("Get should fail when the server is unreachable")
	}
	if _, ok := apierrors.IsAPIError(err); ok {
		t.Error("network failure must not be an APIError")
	}
	if _, ok := apierrors.IsParseError(err); ok {
		t.Error("network failure must not be a ParseError")
	}
}

func TestPost_FormEncoding(t *testing.T) {
	var gotContentType, gotBody, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"retorno":{"status_processamento":3,"status":"OK","registros":[]}}`))
	}))
	defer server.Close()

	service, _ := NewTinyService(testConfig("tok", server.URL), testLogger())

	fields := map[string][]string{"contato": {`{"contatos":[]}`}}
	if _, err := service.Post(context.Background(), "contato.incluir.php", fields); err != nil {
		t.Fatalf("Post returned error: %v", err)
	}

	if gotContentType != "application/x-www-form-urlencoded" {
		t.Errorf("Content-Type = %q, want application/x-www-form-urlencoded", gotContentType)
	}
	if gotBody != "contato=%7B%22contatos%22%3A%5B%5D%7D" {
		t.Errorf("body = %q, want the JSON payload as a single form field", gotBody)
	}
	if gotQuery != "token=tok&formato=json" {
		t.Errorf("query = %q, want token and format on the URL", gotQuery)
	}
}

func TestGet_SuccessStripsEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"retorno":{"status_processamento":3,"status":"OK","conta":{"razao_social":"Acme"}}}`))
	}))
	defer server.Close()

	service, _ := NewTinyService(testConfig("tok", server.URL), testLogger())

	raw, err := service.Get(context.Background(), "info.php", nil)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	want := `{"status_processamento":3,"status":"OK","conta":{"razao_social":"Acme"}}`
	if string(raw) != want {
		t.Errorf("payload = %s, want %s", raw, want)
	}
}
