package exclusions

// DefaultLists returns a new copy of the built-in entries on every call.
func DefaultLists() Lists {
	return Lists{
		Directories: []string{
			// package managers
			"node_modules",
			"bower_components",
			"jspm_packages",
			// .NET
			"bin",
			"obj",
			"packages",
			// Python
			"__pycache__",
			"env",
			"venv",
			".env",
			".venv",
			".tox",
			".pytest_cache",
			"htmlcov",
			".nyc_output",
			// editors
			".vscode",
			".idea",
			// OS
			".Spotlight-V100",
			".Trashes",
			// caches and build output
			".cache",
			".tmp",
			"tmp",
			"temp",
			".sass-cache",
			".next",
			".nuxt",
			"dist",
			"build",
			"out",
			"logs",
		},
		FileNames: []string{
			".Python",
			".env",
			"pip-log.txt",
			"pip-delete-this-directory.txt",
			".coverage",
			"nosetests.xml",
			"coverage.xml",
			".DS_Store",
			"ehthumbs.db",
			"Thumbs.db",
			"README.md",
			"readme.md",
			"README.txt",
			"readme.txt",
			"CHANGELOG.md",
			"changelog.md",
			"LICENSE",
			"license",
			"LICENSE.md",
			"license.md",
			"CONTRIBUTING.md",
			"contributing.md",
		},
		FileSuffixes: []string{
			".nupkg",
			".pyc",
			".pyo",
			".pyd",
			".cover",
			".log",
			".swp",
			".swo",
			"~",
			".tmp",
			".temp",
		},
		FilePrefixes: []string{
			"._",
			"npm-debug.log",
			"yarn-debug.log",
			"yarn-error.log",
		},
	}
}
