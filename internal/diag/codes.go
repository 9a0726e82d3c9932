package diag

// Stable diagnostic codes, organised by phase (PAR###, LNK###,
// TY-01xx, scope/borrow X07E_* codes).
const (
	// Parser (x07-PAR###)
	CodeSchemaVersionUnsupported = "X07-PAR-0001"
	CodeMalformedDocument        = "X07-PAR-0002"
	CodeMissingField             = "X07-PAR-0003"
	CodeGenericSyntaxNotAllowed  = "X07-PAR-0004"
	CodeBadListArity             = "X07-PAR-0005"

	// Linker (x07-LNK###)
	CodeDuplicateSymbol      = "X07-LNK-0001"
	CodeUnresolvedImport     = "X07-LNK-0002"
	CodeUnqualifiedCrossCall = "X07-LNK-0003"
	CodeNotExported          = "X07-LNK-0004"

	// Monomorphisation
	CodeMonoArityMismatch   = "X07-TY-0101"
	CodeMonoBoundViolation  = "X07-TY-0102"
	CodeMonoNonConcreteArgs = "X07-TY-0103"
	CodeMonoNotExported     = "X07-TY-0104"
	CodeMonoNameCollision   = "X07-TY-0105"
	CodeMonoTapeLeftover    = "X07-TY-0106"

	// Budget
	CodeBudgetSpecializationCap = "X07E_BUDGET_SPECIALIZATION_CAP"
	CodeBudgetTypeDepthCap      = "X07E_BUDGET_TYPE_DEPTH_CAP"

	// Type & effect checker scope/async discipline
	CodeScopeOutsideTaskScope  = "X07E_SCOPE_001"
	CodeScopeIllegalSpawn      = "X07E_SCOPE_003"
	CodeSelectEvtEscapesScope  = "X07E_SELECT_EVT_ESCAPES_SCOPE"
	CodeSlotEscapesScope       = "X07E_SLOT_ESCAPES_SCOPE"
	CodeCapabilityGateRejected = "X07E_CAPABILITY_GATE"
	CodeAsyncOutsideContext    = "X07E_ASYNC_CONTEXT"
	CodeUnsafeOutsideBlock     = "X07E_UNSAFE_BLOCK"
	CodeBudgetCfgMisuse        = "X07E_BUDGET_CFG_MISUSE"

	// Borrow analyser
	CodeViewOwnerNotIdent  = "X07E_VIEW_OWNER_NOT_IDENT"
	CodeViewEscapesOwner   = "X07E_VIEW_ESCAPES_OWNER"
	CodeViewJoinMismatch   = "X07E_VIEW_JOIN_MISMATCH"
	CodeViewReturnAmbiguous = "X07E_VIEW_RETURN_AMBIGUOUS"

	// Internal
	CodeInternalInvariant = "X07-INT-0001"
)
