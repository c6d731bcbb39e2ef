package config

func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		Service: ServiceConfig{
			URL:                   "http://localhost:8000",
			AnalyzeTimeoutSeconds: 10,
			UploadTimeoutSeconds:  30,
		},
		AllowedFileTypes: []string{".txt", ".md", ".pdf", ".doc", ".docx"},
	}
}

func GenerateUserConfigTemplate() string {
	return `# CATUI User Configuration
# Location: ~/.config/catui/settings.toml
# This file uses TOML format: https://toml.io

# File extensions the document picker will offer
allowed_file_types = [".txt", ".md", ".pdf", ".doc", ".docx"]

[service]
# Classification service base URL
url = "http://localhost:8000"

# Seconds to wait for a text analysis response
analyze_timeout_seconds = 10

# Seconds to wait for a document upload response
upload_timeout_seconds = 30
`
}
