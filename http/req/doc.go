/*
Package req adapts an HTTP request for routing and parses its payloads.

[FromHTTP] turns an *http.Request into an *api.Request.
A [Parser] decodes JSON bodies and query parameters into a pointer to a struct.
That struct ought to use struct tags for two tasks:
matching keys in the payload to its fields,
and validating the payload's data meets requirements.
Whatever goes wrong while parsing is translated to writium sentinel errors,
so handlers see the same errors across encodings.
*/
package req
