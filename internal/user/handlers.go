package user

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog/log"
)

const (
	msgUpdated       = "Usuario actualizado exitosamente"
	msgInternalError = "Error interno del servidor"
)

// Response is a transport-neutral reply: a status code, headers and a
// serialized JSON body.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       string
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Handle runs one update for a raw JSON body. It never fails: every error is
// logged and turned into a structured error response.
func (h *Handler) Handle(ctx context.Context, body string) Response {
	req, err := DecodeUpdateRequest([]byte(body))
	if err != nil {
		return h.fail(fmt.Errorf("decoding request body: %w", err), "")
	}

	updated, err := h.service.Update(ctx, req)
	if err != nil {
		return h.fail(err, req.Email)
	}

	return respond(http.StatusOK, SuccessResponse{
		StatusDesc:        msgUpdated,
		StatusCode:        http.StatusOK,
		UpdatedAttributes: updated,
	})
}

func (h *Handler) fail(err error, email string) Response {
	kind := KindOf(err)
	status := StatusFor(kind)

	log.Error().
		Err(err).
		Str("kind", kind.String()).
		Str("email", email).
		Int("status", status).
		Msg("Failed to update user")

	desc := msgInternalError
	var classified *Error
	if kind != KindInternal && errors.As(err, &classified) {
		desc = classified.Message
	}

	return respond(status, ErrorResponse{
		StatusDesc:    desc,
		StatusMessage: err.Error(),
		StatusCode:    status,
	})
}

func respond(status int, payload any) Response {
	headers := map[string]string{"Content-Type": "application/json"}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("Error encoding JSON response")
		status = http.StatusInternalServerError
		body, _ = json.Marshal(ErrorResponse{
			StatusDesc:    msgInternalError,
			StatusMessage: err.Error(),
			StatusCode:    status,
		})
	}

	return Response{StatusCode: status, Headers: headers, Body: string(body)}
}

// HandleUpdate serves the update over plain HTTP.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read request body")
		writeResponse(w, respond(http.StatusInternalServerError, ErrorResponse{
			StatusDesc:    msgInternalError,
			StatusMessage: err.Error(),
			StatusCode:    http.StatusInternalServerError,
		}))
		return
	}

	writeResponse(w, h.Handle(r.Context(), string(body)))
}

func writeResponse(w http.ResponseWriter, resp Response) {
	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := io.WriteString(w, resp.Body); err != nil {
		log.Error().Err(err).Msg("Error writing response body")
	}
}

// HandleAPIGateway serves the update as an API Gateway proxy Lambda. The
// returned error is always nil.
func (h *Handler) HandleAPIGateway(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			return toProxy(h.fail(fmt.Errorf("decoding base64 body: %w", err), "")), nil
		}
		body = string(decoded)
	}

	return toProxy(h.Handle(ctx, body)), nil
}

func toProxy(resp Response) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       resp.Body,
	}
}
