package handler

type ContextKey string

var (
	PrincipalCtxKey    ContextKey = "principal"
	MyInfoCtx          ContextKey = "myInfo"
	JobPostingCtx      ContextKey = "jobPosting"
	ApplicationCtx     ContextKey = "application"
	DocumentCtx        ContextKey = "document"
	ProviderServiceCtx ContextKey = "providerService"
)
