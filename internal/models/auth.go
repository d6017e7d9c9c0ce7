package models

// MagicLinkRequest asks for a login link to be mailed to the submitter.
type MagicLinkRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// MagicLinkResponse always reports success; LoginURL is populated only
// outside production so the flow can be exercised without email delivery.
type MagicLinkResponse struct {
	Message      string `json:"message"`
	SubmissionID string `json:"submissionId"`
	LoginURL     string `json:"loginUrl,omitempty"`
}

// VerifyMagicLinkRequest exchanges a magic token for a session.
type VerifyMagicLinkRequest struct {
	Token string `json:"token" validate:"required"`
}

// VerifyMagicLinkResponse returns the session credential and current state.
type VerifyMagicLinkResponse struct {
	SessionToken string      `json:"sessionToken"`
	Submission   *Submission `json:"submission"`
	Email        string      `json:"email"`
	SubmissionID string      `json:"submissionId"`
}

// Session identifies the authenticated submitter attached to a request.
type Session struct {
	Email        string
	SubmissionID string
}

// UploadResponse describes a stored media asset.
type UploadResponse struct {
	AssetID string      `json:"assetId"`
	Image   PosterImage `json:"image"`
	URL     string      `json:"url"`
}
