package life

const (
	WeeksPerSemester = 20
	SemestersPerYear = 2
	MaxYear          = 4

	MaxActionPoints = 10

	TurnStaminaRecovery = 15
	TurnStressDecay     = 10

	AllowanceAmount       = 500
	AllowanceCadenceWeeks = 4

	AttributeMin = 0.0
	AttributeMax = 100.0

	GPAMin = 0.0
	GPAMax = 4.0

	RelationshipMin = -100.0
	RelationshipMax = 100.0

	MinEventChoices = 2
	MaxEventChoices = 4

	HistoryCap = 50
)
