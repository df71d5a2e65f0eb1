package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Fiscal        FiscalSvcFacade
	Ledger        LedgerSvcFacade
	Posting       PostingSvcFacade
	Balance       BalanceSvcFacade
	Audit         AuditSvcFacade
	Chart         ChartOfAccountsSvcFacade
	Authorization AuthorizationSvcFacade
	User          UserSvcFacade
}
