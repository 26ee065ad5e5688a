/*
Package resp writes the results of routing an *api.Request as HTTP responses.

Failures are rendered as JSON, {"msg": "<description>"},
using the status and description of an *api.Error.
Errors of any other kind are never exposed to clients:
they are logged and rendered as a 500 "internal error".
*/
package resp
