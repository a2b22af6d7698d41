package edep

import (
	"fmt"
	"os"

	_ "github.com/go-sql-driver/mysql"
	sqlx "github.com/jmoiron/sqlx" //make alias name the package to sqlx
	_ "modernc.org/sqlite"
)

func ConnectToDatabase(user string, pass string, host string, dbname string) (*sqlx.DB, error) {
	port := "3306"
	dbURI := fmt.Sprintf("%s:%s@(%s:%s)/%s?parseTime=true", user, pass, host, port, dbname)
	db, err := sqlx.Connect("mysql", dbURI)
	return db, err
}

// ConnectToConditionsFile opens a local SQLite copy of the conditions
// database, with the same PhotonCollection table.
func ConnectToConditionsFile(path string) (*sqlx.DB, error) {
	// sqlite would create a new empty database
	if _, err := os.Stat(path); err != nil {
		return nil, &ErrOpenFile{Filename: path, Err: err}
	}
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening conditions file %q: %w", path, err)
	}
	return db, nil
}

type OperatingPointEntry struct {
	Name string  `db:"Name"`
	PCE  float64 `db:"PCE"`
}

// LoadLightTables reads the photon collection operating points valid for
// runNumber. Models without entries keep the default table.
func LoadLightTables(db *sqlx.DB, runNumber int) (LightTables, error) {
	tables := DefaultLightTables()
	for _, model := range ChargeModels {
		entries, err := getOperatingPointsFromDB(db, runNumber, model)
		if err != nil {
			errMessage := fmt.Errorf("error getting %v operating points from database: %w", model, err)
			logger.Error(errMessage.Error())
			return tables, errMessage
		}
		if len(entries) == 0 {
			message := fmt.Sprintf("No %v operating points for run %d, using defaults", model, runNumber)
			logger.Warn(message, "database")
			continue
		}
		points := make([]OperatingPoint, len(entries))
		for i, entry := range entries {
			points[i] = OperatingPoint{Name: entry.Name, PCE: entry.PCE}
		}
		tables[model] = points
	}
	return tables, nil
}

func getOperatingPointsFromDB(db *sqlx.DB, runNumber int, model ChargeModel) ([]OperatingPointEntry, error) {
	query := "SELECT Name, PCE FROM PhotonCollection WHERE Model = ? AND MinRun <= ? AND MaxRun >= ? ORDER BY Position"

	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Reading %v operating points from database", model)
		logger.Info(message, "database")
	}
	if configuration.Verbosity > 2 {
		message := fmt.Sprintf("Query: %s [%v, %d]", query, model, runNumber)
		logger.Info(message, "database")
	}

	rows, err := db.Queryx(db.Rebind(query), model.String(), runNumber, runNumber)
	if err != nil {
		return nil, fmt.Errorf("error querying database: %w", err)
	}
	defer rows.Close()

	entries := make([]OperatingPointEntry, 0)
	for rows.Next() {
		result := OperatingPointEntry{}
		err := rows.StructScan(&result)
		if err != nil {
			return nil, fmt.Errorf("error scanning DB row: %w", err)
		}
		if result.PCE <= 0 {
			return nil, fmt.Errorf("operating point %s has non-positive PCE %g", result.Name, result.PCE)
		}
		entries = append(entries, result)
	}
	return entries, rows.Err()
}
