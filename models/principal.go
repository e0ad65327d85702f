package models

// PrincipalKind distingue os dois domínios de identidade mais o visitante
// anônimo. As operações do ciclo de vida recebem um Principal e decidem por
// variante, em vez de consultar a sessão por conta própria.
type PrincipalKind int

const (
	PRINCIPAL_ANONYMOUS PrincipalKind = iota
	PRINCIPAL_REPORTER
	PRINCIPAL_STAFF
)

type Principal struct {
	Kind PrincipalKind
	ID   int64
}

func Anonymous() Principal {
	return Principal{Kind: PRINCIPAL_ANONYMOUS}
}

func ReporterPrincipal(id int64) Principal {
	return Principal{Kind: PRINCIPAL_REPORTER, ID: id}
}

func StaffPrincipal(id int64) Principal {
	return Principal{Kind: PRINCIPAL_STAFF, ID: id}
}

func (p Principal) IsReporter() bool { return p.Kind == PRINCIPAL_REPORTER }
func (p Principal) IsStaff() bool    { return p.Kind == PRINCIPAL_STAFF }
