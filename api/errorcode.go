package api

import "github.com/TahPapeJe/PotSoft/store"

var (
	errorMessageMap = map[int64]string{
		999: "internal server error",

		1010: "invalid parameters",
		1011: "cannot parse request",

		1100: "uploaded file is not an image",
		1101: store.ErrReportNotFound.Error(),
		1102: "invalid status value",

		1200: "image analysis failed",
		1201: "insight generation failed",
	}

	errorInternalServer = errorJSON(999)

	errorInvalidParameters  = errorJSON(1010)
	errorCannotParseRequest = errorJSON(1011)

	errorNotAnImage     = errorJSON(1100)
	errorReportNotFound = errorJSON(1101)
	errorInvalidStatus  = errorJSON(1102)

	errorAnalysisFailed = errorJSON(1200)
	errorInsightFailed  = errorJSON(1201)
)

type ErrorResponse struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
}

// errorJSON converts an error code to a standardized error object
func errorJSON(code int64) ErrorResponse {
	var message string
	if msg, ok := errorMessageMap[code]; ok {
		message = msg
	} else {
		message = "unknown"
	}

	return ErrorResponse{
		Code:    code,
		Message: message,
	}
}
