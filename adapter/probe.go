package adapter

import (
	"database/sql"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// Environment describes what the running binary can reach.
type Environment interface {
	// Drivers lists the database/sql drivers linked into the binary.
	Drivers() []string
	// PDODrivers lists the pdo sub-drivers and whether the pdo family is present at all.
	PDODrivers() (drivers []string, present bool)
}

// nativeDrivers maps single-driver families to the database/sql driver they need.
var nativeDrivers = map[Family]string{
	FamilyMysqli: "mysql",
	FamilyOracle: "godror",
	FamilyPgsql:  "postgres",
	FamilySqlite: "sqlite",
	FamilySqlsrv: "sqlserver",
}

var synonyms = map[string]Family{
	"mysql":  FamilyMysqli,
	"mysqli": FamilyMysqli,
	"oci":    FamilyOracle,
	"oracle": FamilyOracle,
	"pgsql":  FamilyPgsql,
	"sqlite": FamilySqlite,
	"sqlsrv": FamilySqlsrv,
}

type hostEnvironment struct{}

// HostEnvironment reports the drivers registered with database/sql and the pdo
// dialectors compiled into this binary.
func HostEnvironment() Environment {
	return hostEnvironment{}
}

func (hostEnvironment) Drivers() []string {
	return sql.Drivers()
}

func (hostEnvironment) PDODrivers() ([]string, bool) {
	names := lo.Keys(pdoDialectors)
	sort.Strings(names)
	return names, len(names) > 0
}

// Report is the availability of every family. PDO always holds the four sub-driver keys.
type Report struct {
	Mysqli bool            `json:"mysqli"`
	Oracle bool            `json:"oracle"`
	PDO    map[string]bool `json:"pdo"`
	Pgsql  bool            `json:"pgsql"`
	SQLite bool            `json:"sqlite"`
	Sqlsrv bool            `json:"sqlsrv"`
}

// Map renders the report keyed by family name.
func (r Report) Map() map[string]any {
	pdo := make(map[string]bool, len(PDODrivers))
	for _, sub := range PDODrivers {
		pdo[sub] = r.PDO[sub]
	}
	return map[string]any{
		string(FamilyMysqli): r.Mysqli,
		string(FamilyOracle): r.Oracle,
		string(FamilyPDO):    pdo,
		string(FamilyPgsql):  r.Pgsql,
		string(FamilySqlite): r.SQLite,
		string(FamilySqlsrv): r.Sqlsrv,
	}
}

type Probe struct {
	env Environment
}

func NewProbe(env Environment) *Probe {
	if env == nil {
		env = HostEnvironment()
	}
	return &Probe{env: env}
}

func (p *Probe) drivers() (drivers []string) {
	defer func() {
		if recover() != nil {
			drivers = nil
		}
	}()
	return p.env.Drivers()
}

func (p *Probe) pdoDrivers() (drivers []string, present bool) {
	defer func() {
		if recover() != nil {
			drivers, present = nil, false
		}
	}()
	return p.env.PDODrivers()
}

func (p *Probe) Report() Report {
	drivers := p.drivers()
	pdo, present := p.pdoDrivers()
	r := Report{
		Mysqli: lo.Contains(drivers, nativeDrivers[FamilyMysqli]),
		Oracle: lo.Contains(drivers, nativeDrivers[FamilyOracle]),
		PDO:    make(map[string]bool, len(PDODrivers)),
		Pgsql:  lo.Contains(drivers, nativeDrivers[FamilyPgsql]),
		SQLite: lo.Contains(drivers, nativeDrivers[FamilySqlite]),
		Sqlsrv: lo.Contains(drivers, nativeDrivers[FamilySqlsrv]),
	}
	for _, sub := range PDODrivers {
		r.PDO[sub] = present && lo.Contains(pdo, sub)
	}
	return r
}

// IsAvailable accepts family names, their synonyms (mysql, oci) and pdo_<sub> names.
// Unknown names, including a bare "pdo", report false.
func (p *Probe) IsAvailable(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	if sub, ok := strings.CutPrefix(name, "pdo_"); ok {
		drivers, present := p.pdoDrivers()
		return present && lo.Contains(drivers, sub)
	}
	family, ok := synonyms[name]
	if !ok {
		return false
	}
	return lo.Contains(p.drivers(), nativeDrivers[family])
}

var defaultProbe = NewProbe(HostEnvironment())

// AvailableAdapters reports the families reachable from this binary.
func AvailableAdapters() Report {
	return defaultProbe.Report()
}

func IsAvailable(name string) bool {
	return defaultProbe.IsAvailable(name)
}
