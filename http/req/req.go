package req

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/gorilla/schema"

	"github.com/xy-planning-network/writium"
	"github.com/xy-planning-network/writium/api"
)

// A Parser decodes request payloads into structs and validates them.
type Parser struct {
	queryParamDecoder *schema.Decoder
	validator
}

// NewParser constructs a *Parser with default configuration.
func NewParser() *Parser {
	return &Parser{
		queryParamDecoder: newQueryParamDecoder(),
		validator:         newValidator(),
	}
}

// FromHTTP converts r into an *api.Request ready to be routed.
//
// The returned *api.Request shares the context, headers and body of r.
// FromHTTP returns writium.ErrNotValid if the path of r escapes the root.
func FromHTTP(r *http.Request) (*api.Request, error) {
	req, err := api.NewRequest(r.Method, r.URL.RequestURI())
	if err != nil {
		return nil, fmt.Errorf("writium/http/req: %w", err)
	}

	return req.WithContext(r.Context()).WithHeaders(r.Header).WithBody(r.Body), nil
}

// ParseBody decodes into a pointer to a struct the JSON data in body.
// If successful, ParseBody runs validation against the contents,
// returning an ErrNotValid if the data fails validation rules.
//
// ParseBody reads the entire body and it can't be read from again.
func (p *Parser) ParseBody(body io.Reader, structPtr any) error {
	var ourFault *json.InvalidUnmarshalError
	err := json.NewDecoder(body).Decode(structPtr)
	if errors.As(err, &ourFault) {
		return fmt.Errorf("writium/http/req: %w: ParseBody called with non-pointer: %s", writium.ErrUnexpected, err)
	}

	if err != nil {
		return fmt.Errorf("writium/http/req: %w: failed decoding request body: %s", writium.ErrBadFormat, err)
	}

	if err := p.validate(structPtr); err != nil {
		return fmt.Errorf("writium/http/req: %T failed validation: %w", structPtr, err)
	}

	return nil
}

// ParseQueryParams decodes into a pointer to a struct the query param data in params.
// If successful, ParseQueryParams runs validation against the contents,
// returning an ErrNotValid if the data fails validation rules.
func (p *Parser) ParseQueryParams(params url.Values, structPtr any) error {
	if err := p.queryParamDecoder.Decode(structPtr, params); err != nil {
		return fmt.Errorf("writium/http/req: failed decoding request query params: %w", translateDecoderError(err))
	}

	if err := p.validate(structPtr); err != nil {
		return fmt.Errorf("writium/http/req: %T failed validation: %w", structPtr, err)
	}

	return nil
}
