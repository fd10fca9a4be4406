package dto

// ConnectMailboxRequest enrolls a provider account for polling.
type ConnectMailboxRequest struct {
	EmailAddress      string `json:"emailAddress" binding:"required"`
	ProviderAccountID string `json:"providerAccountId"`
	AccessToken       string `json:"accessToken" binding:"required"`
	RefreshToken      string `json:"refreshToken" binding:"required"`
}

type MailboxResponse struct {
	ID           string `json:"id"`
	EmailAddress string `json:"emailAddress"`
	Status       string `json:"status"`
	ErrorMessage string `json:"errorMessage,omitempty"`
	LastSyncedAt string `json:"lastSyncedAt,omitempty"`
}
