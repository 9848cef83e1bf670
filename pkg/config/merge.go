package config

// MergeHook layers a configuration-side hook override on top of the manifest
// default with the same id. Merge granularity is per-field replace: a field
// set in the override replaces the manifest value, an unset field inherits it.
func MergeHook(base, override Hook) Hook {
	merged := base
	merged.ID = override.ID

	if override.Name != "" {
		merged.Name = override.Name
	}
	if override.Entry != "" {
		merged.Entry = override.Entry
	}
	if override.Language != "" {
		merged.Language = override.Language
	}
	if override.Args != nil {
		merged.Args = override.Args
	}
	if override.Files != "" {
		merged.Files = override.Files
	}
	if override.Exclude != "" {
		merged.Exclude = override.Exclude
	}
	if override.Types != nil {
		merged.Types = override.Types
	}
	if override.ExcludeTypes != nil {
		merged.ExcludeTypes = override.ExcludeTypes
	}
	if override.AdditionalDependencies != nil {
		merged.AdditionalDependencies = override.AdditionalDependencies
	}
	if override.PassFilenames != nil {
		merged.PassFilenames = override.PassFilenames
	}
	if override.RequireSerial {
		merged.RequireSerial = true
	}
	if override.AlwaysRun {
		merged.AlwaysRun = true
	}

	return merged
}
