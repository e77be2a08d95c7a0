package constants

// Centralized constants for headers, env keys and route paths.
const (
	// Environment variable keys
	EnvSessionSecret       = "SESSION_SECRET"
	EnvGoogleClientID      = "GOOGLE_CLIENT_ID"
	EnvGoogleClientSecret  = "GOOGLE_CLIENT_SECRET"
	EnvSessionSecureCookie = "SESSION_SECURE_COOKIE"

	// HTTP headers and content types
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"

	ContentTypeJSON = "application/json"

	// Authorization prefix
	BearerPrefix = "Bearer "

	// Session / Cookie names
	CookieSessionName = "pb_session"

	// Google OAuth constants
	GoogleOAuthRedirect = "postmessage"
	GoogleUserInfoURL   = "https://www.googleapis.com/oauth2/v2/userinfo"
)

var (
	// Scopes for Google userinfo
	GoogleUserInfoScopes = []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"}
)

// Routes used by the backend router
const (
	RouteAPIPrefix          = "/api"
	RoutePets               = "/pets"
	RouteInventory          = "/inventory"
	RouteLeaderboard        = "/leaderboard"
	RouteProfile            = "/profile"
	RouteAuthGoogleCallBack = "/auth/google/oauth2callback"
	RouteBattles            = "/battles"
	RouteBattleByID         = "/battles/:battleID"
	RouteBattleTurns        = "/battles/:battleID/turns"
	RouteBattleComplete     = "/battles/:battleID/complete"
	RouteBattleSocket       = "/battles/:battleID/ws"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyStatus  = "status"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest   = "Invalid request"
	ErrMissingGoogleEnv = "Missing GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET in environment"
	ErrInvalidBattleID  = "Invalid battle ID"
	ErrBattleNotFound   = "Battle not found"

	ErrFailedFetchPets        = "Failed to fetch pets"
	ErrFailedCreatePet        = "Failed to create pet"
	ErrFailedFetchInventory   = "Failed to fetch inventory"
	ErrFailedFetchLeaderboard = "Failed to fetch leaderboard"
	ErrFailedFetchProfile     = "Failed to fetch profile"
	ErrFailedFetchTurns       = "Failed to fetch battle turns"
	ErrFailedCreateBattle     = "Failed to create battle"
	ErrFailedUpdateBattle     = "Failed to update battle"
	ErrFailedSettleBattle     = "Failed to settle battle"

	ErrFailedExchangeToken    = "Failed to exchange token"
	ErrFailedGetUserInfo      = "Failed to get user info"
	ErrFailedReadUserData     = "Failed to read user data: %s"
	ErrNoEmailInGoogleProfile = "No email in Google profile"
	ErrFailedCreateSession    = "Failed to create session"

	ErrAuthRequired   = "Authentication required"
	ErrInvalidSession = "Invalid session"
)

// Logging field names
const (
	LogFieldBattleID = "battle_id"
	LogFieldUserID   = "user_id"
	LogFieldWeather  = "weather"
	LogFieldItem     = "item"
	LogFieldTurn     = "turn"
	LogFieldAddr     = "addr"
)
