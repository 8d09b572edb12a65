package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	awsevents "github.com/aws/aws-lambda-go/events"
	"github.com/mbland/addrcheck/agent"
	"github.com/mbland/addrcheck/ops"
)

const jsonContentType = "application/json; charset=utf-8"

type apiHandler struct {
	Agent agent.ValidationAgent
	log   *log.Logger
}

type errorResponseBody struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

type errorWithStatus struct {
	HttpStatus int
	Message    string
}

func (err *errorWithStatus) Error() string {
	return err.Message
}

func (h *apiHandler) HandleEvent(
	ctx context.Context, origReq *awsevents.APIGatewayV2HTTPRequest,
) (res *awsevents.APIGatewayV2HTTPResponse) {
	req, err := newApiRequest(origReq)

	if err == nil {
		res, err = h.handleApiRequest(ctx, req)
	}

	if err != nil {
		res = h.errorResponse(err)
	}
	logApiResponse(h.log, origReq, res, err)
	return
}

func (h *apiHandler) handleApiRequest(
	ctx context.Context, req *apiRequest,
) (*awsevents.APIGatewayV2HTTPResponse, error) {
	address, err := parseApiRequest(req)
	if err != nil {
		return nil, err
	}

	result, err := h.Agent.Validate(ctx, address)
	if err != nil {
		if errors.Is(err, ops.ErrExternal) {
			err = &errorWithStatus{http.StatusBadGateway, err.Error()}
		}
		return nil, err
	}

	res := &awsevents.APIGatewayV2HTTPResponse{
		StatusCode: http.StatusOK, Headers: map[string]string{},
	}
	if err = setJsonBody(res, result); err != nil {
		return nil, err
	}
	return res, nil
}

func (h *apiHandler) errorResponse(
	err error,
) *awsevents.APIGatewayV2HTTPResponse {
	res := &awsevents.APIGatewayV2HTTPResponse{
		StatusCode: http.StatusInternalServerError,
		Headers:    map[string]string{},
	}
	message := "There was a problem on our end; " +
		"please try again in a few minutes."

	var parseErr *ParseError
	var statusErr *errorWithStatus

	if errors.As(err, &parseErr) {
		res.StatusCode = parseErr.HttpStatus
		message = parseErr.Error()
	} else if errors.As(err, &statusErr) {
		res.StatusCode = statusErr.HttpStatus
	}

	body := &errorResponseBody{res.StatusCode, message}
	if jsonErr := setJsonBody(res, body); jsonErr != nil {
		// This should never happen, but if it does, fall back to plain text.
		h.log.Printf("ERROR adding JSON response body: %s: %+v", jsonErr, body)
		res.Headers["content-type"] = "text/plain; charset=utf-8"
		res.Body = fmt.Sprintf("%d %s\n", res.StatusCode, message)
	}
	return res
}

func setJsonBody(res *awsevents.APIGatewayV2HTTPResponse, body any) error {
	if data, err := json.Marshal(body); err != nil {
		return fmt.Errorf("failed to marshal response body: %w", err)
	} else {
		res.Headers["content-type"] = jsonContentType
		res.Body = string(data)
	}
	return nil
}

func logApiResponse(
	log *log.Logger,
	req *awsevents.APIGatewayV2HTTPRequest,
	res *awsevents.APIGatewayV2HTTPResponse,
	err error,
) {
	reqId := req.RequestContext.RequestID
	desc := req.RequestContext.HTTP
	errMsg := ""

	if err != nil {
		errMsg = ": " + err.Error()
	}

	log.Printf(`%s: %s "%s %s %s" %d%s`,
		reqId,
		desc.SourceIP, desc.Method, desc.Path, desc.Protocol, res.StatusCode,
		errMsg,
	)
}

func newApiRequest(
	req *awsevents.APIGatewayV2HTTPRequest,
) (*apiRequest, error) {
	contentType, foundContentType := req.Headers["content-type"]
	body := req.Body

	// API Gateway lowercases header names, but `sam local` passes them
	// through as the client sent them.
	if !foundContentType {
		contentType = req.Headers["Content-Type"]
	}

	if req.IsBase64Encoded {
		if decoded, err := base64.StdEncoding.DecodeString(body); err != nil {
			return nil, &errorWithStatus{
				http.StatusBadRequest,
				fmt.Sprintf("failed to base64 decode body: %s", err),
			}
		} else {
			body = string(decoded)
		}
	}

	return &apiRequest{
		req.RequestContext.RequestID,
		req.RawPath,
		req.RequestContext.HTTP.Method,
		contentType,
		req.PathParameters,
		body,
	}, nil
}
