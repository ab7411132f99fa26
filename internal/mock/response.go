package mock

import (
	"time"

	"github.com/rs/zerolog/log"
)

// createdAtFormat renders timestamps the way the provider does: UTC,
// millisecond precision, ISO-8601.
const createdAtFormat = "2006-01-02T15:04:05.000Z07:00"

// RegistrationRequest is the payload the real registration API accepts.
// Fields are passed through verbatim; the simulator performs no validation.
type RegistrationRequest struct {
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	CountryCode string `json:"countryCode"`
}

// ClientRecord mirrors the provider's client schema.
type ClientRecord struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	FullName      string `json:"fullName"`
	CountryCode   string `json:"countryCode"`
	IsKYCVerified bool   `json:"isKYCVerified"`
	AdminApproval string `json:"adminApproval"`
	CreatedAt     string `json:"createdAt"`
}

// ClientResponse is the simulated success payload. Always successful; mock
// mode has no failure path.
type ClientResponse struct {
	Success  bool         `json:"success"`
	ClientID string       `json:"clientId"`
	KYCLink  string       `json:"kycLink"`
	Message  string       `json:"message"`
	Data     ClientRecord `json:"data"`
}

// NewClientResponse fabricates a registration response for the given request.
// The client ID and KYC link come from the generators above; the full name is
// first and last name joined with a single space; the record always starts
// unverified with approval pending.
func NewClientResponse(req RegistrationRequest, kycBaseURL string) ClientResponse {
	clientID := GenerateClientID()
	kycLink := GenerateKYCLink(kycBaseURL, clientID)

	log.Debug().
		Str("client_id", clientID).
		Str("kyc_link", kycLink).
		Str("email", req.Email).
		Msg("generated mock client registration")

	return ClientResponse{
		Success:  true,
		ClientID: clientID,
		KYCLink:  kycLink,
		Message:  "Mock registration successful. Complete KYC verification using the link provided.",
		Data: ClientRecord{
			ID:            clientID,
			Email:         req.Email,
			FullName:      req.FirstName + " " + req.LastName,
			CountryCode:   req.CountryCode,
			IsKYCVerified: false,
			AdminApproval: "PENDING",
			CreatedAt:     time.Now().UTC().Format(createdAtFormat),
		},
	}
}
