package req_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xy-planning-network/writium"
	"github.com/xy-planning-network/writium/http/req"
)

type order string

func (o order) String() string { return string(o) }
func (o order) Valid() error {
	if o == "newest" || o == "oldest" {
		return nil
	}
	return errors.New("unknown order")
}

func TestFromHTTP(t *testing.T) {
	// Arrange
	r := httptest.NewRequest(http.MethodPut, "/articles/hello%20world/./draft?page=2", strings.NewReader("body"))
	r.Header.Set("X-Test", "yes")

	// Act
	actual, err := req.FromHTTP(r)

	// Assert
	require.Nil(t, err)
	require.Equal(t, http.MethodPut, actual.Method())
	require.Equal(t, []string{"articles", "hello world", "draft"}, actual.Path())
	require.Equal(t, "2", actual.Query().Get("page"))
	require.Equal(t, "yes", actual.Header().Get("X-Test"))
	require.Equal(t, r.Context(), actual.Context())

	b, err := io.ReadAll(actual.Body())
	require.Nil(t, err)
	require.Equal(t, "body", string(b))
}

func TestFromHTTPEscapesRoot(t *testing.T) {
	// Arrange
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.URL.Path = "/static/../../etc/passwd"

	// Act
	actual, err := req.FromHTTP(r)

	// Assert
	require.Nil(t, actual)
	require.ErrorIs(t, err, writium.ErrNotValid)
}

func TestParserParseBody(t *testing.T) {
	// Arrange
	parser := req.NewParser()

	type draft struct {
		Title string `json:"title,omitempty" validate:"required"`
		Words int64  `json:"words" validate:"gt=10,required"`
		Meta  struct {
			Public bool `json:"public" validate:"eq=true"`
		} `json:"meta"`
		Order  order   `json:"order" validate:"enum"`
		Orders []order `json:"orders" validate:"enum"`
		Secret string  `json:"-"`
	}
	var input, output draft

	b := new(bytes.Buffer)
	require.Nil(t, json.NewEncoder(b).Encode(input))

	// Act
	err := parser.ParseBody(b, struct{}{})

	// Assert
	require.ErrorIs(t, err, writium.ErrUnexpected)

	// Arrange
	b.Reset()
	b.WriteByte('\x00')

	// Act
	err = parser.ParseBody(b, &output)

	// Assert
	require.ErrorIs(t, err, writium.ErrBadFormat)

	// Arrange
	expected := req.ValidationErrors{
		{Field: "title", Got: "", Rule: "required; string"},
		{Field: "words", Got: int64(0), Rule: "gt=10; int64"},
		{Field: "meta.public", Got: false, Rule: "eq=true; bool"},
		{Field: "order", Got: order(""), Rule: "enum; req_test.order"},
		{Field: "orders", Got: []order(nil), Rule: "enum; []req_test.order"},
	}

	require.Nil(t, json.NewEncoder(b).Encode(input))

	// Act
	err = parser.ParseBody(b, &output)

	// Assert
	var actual req.ValidationErrors
	require.ErrorIs(t, err, writium.ErrNotValid)
	require.Equal(t, input, output)
	require.ErrorAs(t, err, &actual)
	require.Equal(t, expected, actual)

	// Arrange
	input.Title = "Hello"
	input.Words = 20
	input.Meta.Public = true
	input.Order = "newest"
	input.Orders = []order{"oldest"}
	input.Secret = "ignore"

	b = new(bytes.Buffer)
	require.Nil(t, json.NewEncoder(b).Encode(input))

	// Act
	err = parser.ParseBody(b, &output)

	// Assert
	require.Nil(t, err)
	require.Equal(t, input.Title, output.Title)
	require.Equal(t, input.Words, output.Words)
	require.Equal(t, input.Meta, output.Meta)
	require.Equal(t, input.Order, output.Order)
	require.Equal(t, input.Orders, output.Orders)
	require.Equal(t, "", output.Secret)
}

func TestParserParseQueryParams(t *testing.T) {
	// Arrange
	parser := req.NewParser()
	u := make(url.Values)

	// Act
	err := parser.ParseQueryParams(u, struct{}{})

	// Assert
	require.ErrorIs(t, err, writium.ErrBadFormat)

	// Act
	err = parser.ParseQueryParams(u, new(struct {
		Page string `schema:"page,required"`
	}))

	// Assert
	require.ErrorIs(t, err, writium.ErrNotImplemented)

	// Arrange
	u.Set("page", "1")

	// Act
	err = parser.ParseQueryParams(u, new(struct {
		Page struct{} `schema:"page"`
	}))

	// Assert
	require.ErrorIs(t, err, writium.ErrNotImplemented)

	// Arrange
	type digestQuery struct {
		Page  int64    `schema:"page" validate:"gte=0"`
		Tags  []string `schema:"tag" validate:"max=2"`
		Order order    `schema:"order" validate:"omitempty,enum"`
		Debug string   `schema:"-"`
	}

	u.Set("page", "first")

	// Act
	err = parser.ParseQueryParams(u, new(digestQuery))

	// Assert
	var actual req.ValidationErrors
	require.ErrorIs(t, err, writium.ErrNotValid)
	require.ErrorAs(t, err, &actual)
	require.Equal(t, req.ValidationErrors{{Field: "page", Got: "bad value at index 0", Rule: "must be int64"}}, actual)

	// Arrange
	u.Set("page", "-1")
	u.Set("order", "random")

	expected := req.ValidationErrors{
		{Field: "page", Got: int64(-1), Rule: "gte=0; int64"},
		{Field: "order", Got: order("random"), Rule: "enum; req_test.order"},
	}

	// Act
	err = parser.ParseQueryParams(u, new(digestQuery))

	// Assert
	require.ErrorIs(t, err, writium.ErrNotValid)
	require.ErrorAs(t, err, &actual)
	require.Equal(t, expected, actual)

	// Arrange
	u.Set("page", "3")
	u.Set("order", "oldest")
	u.Add("tag", "go")
	u.Set("debug", "ignore")
	actualVal := new(digestQuery)

	// Act
	err = parser.ParseQueryParams(u, actualVal)

	// Assert
	require.Nil(t, err)
	require.Equal(t, int64(3), actualVal.Page)
	require.Equal(t, order("oldest"), actualVal.Order)
	require.Equal(t, []string{"go"}, actualVal.Tags)
	require.Equal(t, "", actualVal.Debug)
}
