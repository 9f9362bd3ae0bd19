package common

const (
	// AuthorizationHeaderName carries the bearer token on inbound requests.
	AuthorizationHeaderName = "Authorization"

	// BearerScheme is the prefix expected in front of the token.
	BearerScheme = "Bearer "

	// ImageFormField is the multipart field holding the story image.
	ImageFormField = "image"
)
