package model

const (
	StatusSuccess = "Success"
	StatusError   = "Error"
)

// Fixed wire messages. Frontends match on some of these strings, so they
// must not change.
const (
	MsgKeywordRequired      = "Keyword is required"
	MsgSearchParamRequired  = "At least one search parameter is required"
	MsgNoBoundingBox        = "No matching properties found or insufficient data to calculate bounding box"
	MsgListingProviderError = "Error fetching data from third-party API"
	MsgMissingMandatory     = "Missing mandatory fields"
	MsgEnquirySaved         = "Data successfully saved"
	MsgEnquiryFailed        = "Failed to save enquiry"
	MsgTooManyRequests      = "Too many requests"
)

// StatusResponse is the {status, data} envelope used by property search
// and by a successful enquiry.
type StatusResponse struct {
	Status string `json:"status"`
	Data   string `json:"data"`
}

// MessageResponse is the {message} envelope used by enquiry errors.
type MessageResponse struct {
	Message string `json:"message"`
}
