package errors

// ErrorCode identifies an application error independently of its HTTP status
type ErrorCode int32

const (
	ErrorCode_HTTP_OK          ErrorCode = 200
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1002
	ErrorCode_NOT_FOUND        ErrorCode = 1004
	ErrorCode_INTERNAL         ErrorCode = 1500

	ErrorCode_EXTRACTION_FAILED           ErrorCode = 3001
	ErrorCode_EXTRACTION_UNKNOWN_STRATEGY ErrorCode = 3002

	ErrorCode_NLP_SERVICE_UNAVAILABLE ErrorCode = 4001
	ErrorCode_NLP_INFERENCE_FAILED    ErrorCode = 4002

	ErrorCode_INTEGRATION_CACHE_FAILED        ErrorCode = 5001
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED ErrorCode = 5002
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                         "HTTP_OK",
	ErrorCode_INVALID_ARGUMENT:                "INVALID_ARGUMENT",
	ErrorCode_INVALID_PAYLOAD:                 "INVALID_PAYLOAD",
	ErrorCode_NOT_FOUND:                       "NOT_FOUND",
	ErrorCode_INTERNAL:                        "INTERNAL",
	ErrorCode_EXTRACTION_FAILED:               "EXTRACTION_FAILED",
	ErrorCode_EXTRACTION_UNKNOWN_STRATEGY:     "EXTRACTION_UNKNOWN_STRATEGY",
	ErrorCode_NLP_SERVICE_UNAVAILABLE:         "NLP_SERVICE_UNAVAILABLE",
	ErrorCode_NLP_INFERENCE_FAILED:            "NLP_INFERENCE_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:        "INTEGRATION_CACHE_FAILED",
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED: "INTEGRATION_EXTERNAL_API_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
