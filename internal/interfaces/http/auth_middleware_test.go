package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/talento-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testSubject   = "seed-employees"
	testIssuer    = "talento-api-test"
	testExpMin    = 60
)

// tokenWithScope genera un JWT con el alcance indicado.
func tokenWithScope(t *testing.T, secret, scope string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(secret, testSubject, scope, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

var newCompany = map[string]any{"NIT": "123456789", "name": "Acme", "address": "Calle 1"}

// Sin JWT_SECRET las escrituras quedan abiertas.
func TestAuth_SinSecretoEscriturasAbiertas(t *testing.T) {
	app := buildApp("")
	status, _ := call(t, app, http.MethodPost, "/company", newCompany, "")
	assert.Equal(t, http.StatusCreated, status)
}

func TestAuth_EscrituraSinToken(t *testing.T) {
	app := buildApp(testJWTSecret)
	status, body := call(t, app, http.MethodPost, "/company", newCompany, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_TOKEN", body["code"])
}

func TestAuth_FormatoInvalido(t *testing.T) {
	app := buildApp(testJWTSecret)
	status, body := call(t, app, http.MethodPost, "/company", newCompany, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_TOKEN", body["code"])
}

func TestAuth_FirmaIncorrecta(t *testing.T) {
	app := buildApp(testJWTSecret)
	status, body := call(t, app, http.MethodPost, "/company", newCompany, tokenWithScope(t, "otro-secreto", pkgjwt.ScopeWrite))
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_TOKEN", body["code"])
}

func TestAuth_SinAlcanceDeEscritura(t *testing.T) {
	app := buildApp(testJWTSecret)
	status, body := call(t, app, http.MethodPost, "/company", newCompany, tokenWithScope(t, testJWTSecret, "records:read"))
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", body["code"])
}

func TestAuth_ConAlcanceDeEscritura(t *testing.T) {
	app := buildApp(testJWTSecret)
	status, _ := call(t, app, http.MethodPost, "/company", newCompany, tokenWithScope(t, testJWTSecret, "records:read "+pkgjwt.ScopeWrite))
	assert.Equal(t, http.StatusCreated, status)

	// Las lecturas no exigen token.
	status, _ = call(t, app, http.MethodGet, "/company/123456789", nil, "")
	assert.Equal(t, http.StatusOK, status)
}

func TestJWT_GenerateYParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testSubject, pkgjwt.ScopeWrite, testIssuer, testExpMin)
	require.NoError(t, err)

	subject, scope, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testSubject, subject)
	assert.Equal(t, pkgjwt.ScopeWrite, scope)

	_, err = pkgjwt.Generate("", testSubject, pkgjwt.ScopeWrite, testIssuer, testExpMin)
	assert.Error(t, err)

	expired, err := pkgjwt.Generate(testJWTSecret, testSubject, pkgjwt.ScopeWrite, testIssuer, -1)
	require.NoError(t, err)
	_, _, err = pkgjwt.Parse(testJWTSecret, expired)
	assert.Error(t, err, "un token vencido es inválido")
}
