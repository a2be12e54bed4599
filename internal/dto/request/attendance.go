package request

type ConfirmJoinRequest struct {
	Evidence string `json:"evidence" validate:"required,max=1024"`
}

type ComplainRequest struct {
	EvidenceURL string `json:"evidence_url" validate:"required,url,max=1024"`
}
