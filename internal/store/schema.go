package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS app_state (
    name                 TEXT PRIMARY KEY,
    version              INTEGER NOT NULL,
    payload              TEXT NOT NULL,
    saved_at             TEXT NOT NULL
);
`

// CurrentVersion is the schema version written by Save.
const CurrentVersion = 3

// deprecatedKeys were credentials kept in the state blob before v3.
var deprecatedKeys = []string{
	"deepseekApiKey",
	"nutritionixAppId",
	"nutritionixAppKey",
	"apiNinjasKey",
}

// migrations[i] upgrades a raw blob from version i+1 to i+2.
var migrations = []func(raw map[string]any){
	migrateV1,
	migrateV2,
}

// migrateV1 backfills manual-override flags on every day record.
func migrateV1(raw map[string]any) {
	days, _ := raw["dailyData"].(map[string]any)
	for _, v := range days {
		day, ok := v.(map[string]any)
		if !ok {
			continue
		}
		if _, ok := day["goalManualOverrides"]; !ok {
			day["goalManualOverrides"] = map[string]any{
				"study": false, "gym": false, "nutrition": false, "sleep": false, "discipline": false,
			}
		}
	}
}

// migrateV2 folds the flat profile fields into a profile object, backfills
// the streak archive and drops stored credentials.
func migrateV2(raw map[string]any) {
	foldProfile(raw)
	if _, ok := raw["streakHistory"].([]any); !ok {
		raw["streakHistory"] = []any{}
	}
	for _, k := range deprecatedKeys {
		delete(raw, k)
	}
}

// canonicalize runs on every blob whatever its version. The browser app
// keeps the profile fields flat even at v3, and older exports of this store
// used foodName, aiSummary and length where the browser writes name,
// summary and lengthDays.
func canonicalize(raw map[string]any) {
	foldProfile(raw)

	days, _ := raw["dailyData"].(map[string]any)
	for _, v := range days {
		day, ok := v.(map[string]any)
		if !ok {
			continue
		}
		for _, list := range []string{"foodEntries", "gymActivities"} {
			items, _ := day[list].([]any)
			for _, it := range items {
				if m, ok := it.(map[string]any); ok {
					renameKey(m, "foodName", "name")
					renameKey(m, "aiSummary", "summary")
				}
			}
		}
	}

	history, _ := raw["streakHistory"].([]any)
	for _, it := range history {
		if m, ok := it.(map[string]any); ok {
			renameKey(m, "length", "lengthDays")
		}
	}
}

// foldProfile moves userName, userAge and userGender into the profile
// object. Values already in profile win.
func foldProfile(raw map[string]any) {
	profile, _ := raw["profile"].(map[string]any)
	if profile == nil {
		profile = map[string]any{}
	}
	for _, k := range []string{"userName", "userAge", "userGender"} {
		if v, ok := raw[k]; ok {
			if _, set := profile[k]; !set && v != nil {
				profile[k] = v
			}
			delete(raw, k)
		}
	}
	raw["profile"] = profile
}

// renameKey moves m[from] to m[to] unless to is already present.
func renameKey(m map[string]any, from, to string) {
	v, ok := m[from]
	if !ok {
		return
	}
	delete(m, from)
	if _, exists := m[to]; !exists {
		m[to] = v
	}
}
