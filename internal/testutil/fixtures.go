// internal/testutil/fixtures.go
package testutil

import "github.com/cmwen/mcp-dev-env-setup/internal/core/domain"

// Fixture data para tests: un catálogo mínimo que no toca gestores reales.

// FixtureGit is a plain tool with methods for homebrew, apt and dnf.
func FixtureGit() domain.ToolDescriptor {
	return domain.ToolDescriptor{
		Name:          "git",
		DisplayName:   "Git",
		Category:      domain.CategoryUtility,
		VerifyCommand: "git",
		VersionFlag:   "--version",
		Methods: domain.InstallMethods{
			Homebrew: &domain.InstallMethod{PackageSpecifier: "git"},
			Apt:      &domain.InstallMethod{PackageSpecifier: "git"},
			Dnf:      &domain.InstallMethod{PackageSpecifier: "git"},
		},
		ManualInstallURL: "https://git-scm.com/downloads",
	}
}

// FixturePython has alternates, post-install steps and a versioned specifier.
func FixturePython() domain.ToolDescriptor {
	return domain.ToolDescriptor{
		Name:          "python",
		DisplayName:   "Python",
		Category:      domain.CategoryLanguage,
		VerifyCommand: "python3",
		VersionFlag:   "--version",
		Aliases:       []string{"python3"},
		Methods: domain.InstallMethods{
			Homebrew: &domain.InstallMethod{
				PackageSpecifier:   "python",
				VersionedSpecifier: "python@{version}",
			},
			Apt: &domain.InstallMethod{
				PackageSpecifier:  "python3",
				AlternateCommands: []string{"sudo apt-get install -y python3-minimal", "sudo apt-get install -y python3-full"},
				PostInstallSteps:  []string{"sudo apt-get install -y python3-pip", "sudo apt-get install -y python3-venv"},
			},
		},
		ManualInstallURL: "https://www.python.org/downloads/",
	}
}

// FixtureDocker only installs through homebrew.
func FixtureDocker() domain.ToolDescriptor {
	return domain.ToolDescriptor{
		Name:          "docker",
		DisplayName:   "Docker",
		Category:      domain.CategoryRuntime,
		VerifyCommand: "docker",
		VersionFlag:   "--version",
		Methods: domain.InstallMethods{
			Homebrew: &domain.InstallMethod{PackageSpecifier: "--cask docker"},
		},
		ManualInstallURL: "https://docs.docker.com/engine/install/",
	}
}

// FixtureGo needs shell configuration after install.
func FixtureGo() domain.ToolDescriptor {
	return domain.ToolDescriptor{
		Name:          "go",
		DisplayName:   "Go",
		Category:      domain.CategoryLanguage,
		VerifyCommand: "go",
		VersionFlag:   "version",
		Methods: domain.InstallMethods{
			Homebrew: &domain.InstallMethod{PackageSpecifier: "go"},
			Apt:      &domain.InstallMethod{PackageSpecifier: "golang-go"},
		},
		EnvironmentVariables: map[string]string{"GOPATH": "$HOME/go"},
		ShellProfileSnippet:  `export PATH="$PATH:$GOPATH/bin"`,
	}
}

// FixtureJava is the prerequisite of FixtureAndroidSDK.
func FixtureJava() domain.ToolDescriptor {
	return domain.ToolDescriptor{
		Name:          "java",
		DisplayName:   "Java (OpenJDK)",
		Category:      domain.CategoryRuntime,
		VerifyCommand: "java",
		VersionFlag:   "-version",
		Methods: domain.InstallMethods{
			Homebrew: &domain.InstallMethod{PackageSpecifier: "openjdk@17"},
			Apt:      &domain.InstallMethod{PackageSpecifier: "openjdk-17-jdk"},
		},
	}
}

// FixtureNode uses the version manager strategy.
func FixtureNode() domain.ToolDescriptor {
	return domain.ToolDescriptor{
		Name:          "node",
		DisplayName:   "Node.js",
		Category:      domain.CategoryRuntime,
		VerifyCommand: "node",
		VersionFlag:   "--version",
		Strategy:      domain.StrategyVersionManager,
		Bootstrap: &domain.BootstrapSpec{
			Manager:         "nvm",
			Command:         "curl -o- https://raw.githubusercontent.com/nvm-sh/nvm/v0.40.1/install.sh | bash",
			ActivateCommand: `. "$HOME/.nvm/nvm.sh"`,
			RuntimeInstall:  "nvm install {version}",
			DefaultVersion:  "--lts",
		},
		Methods: domain.InstallMethods{
			Homebrew: &domain.InstallMethod{PackageSpecifier: "node"},
			Apt:      &domain.InstallMethod{PackageSpecifier: "nodejs", PostInstallSteps: []string{"sudo apt-get install -y npm"}},
		},
		EnvironmentVariables: map[string]string{"NVM_DIR": "$HOME/.nvm"},
		ShellProfileSnippet:  `[ -s "$NVM_DIR/nvm.sh" ] && . "$NVM_DIR/nvm.sh"`,
	}
}

// FixtureAndroidSDK uses the IDE bundle strategy with java as prerequisite.
func FixtureAndroidSDK() domain.ToolDescriptor {
	return domain.ToolDescriptor{
		Name:          "android-sdk",
		DisplayName:   "Android SDK",
		Category:      domain.CategorySDK,
		VerifyCommand: "sdkmanager",
		VersionFlag:   "--version",
		Strategy:      domain.StrategyIDEBundle,
		Prerequisites: []string{"java"},
		Methods: domain.InstallMethods{
			Homebrew: &domain.InstallMethod{PackageSpecifier: "--cask android-studio"},
			Apt:      &domain.InstallMethod{PackageSpecifier: "android-sdk"},
		},
		EnvironmentVariables: map[string]string{"ANDROID_HOME": "$HOME/Android/Sdk"},
	}
}

// FixtureTools devuelve el catálogo de prueba en orden de definición.
func FixtureTools() []domain.ToolDescriptor {
	return []domain.ToolDescriptor{
		FixtureGit(),
		FixturePython(),
		FixtureDocker(),
		FixtureGo(),
		FixtureJava(),
		FixtureNode(),
		FixtureAndroidSDK(),
	}
}
