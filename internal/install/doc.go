// Package install orchestrates the cortex operations on a project: install,
// upgrade, uninstall and MCP configure.
//
// Each operation is a short fixed sequence of independent steps over three
// stores: the project's CLAUDE.md, the copied template files, and the
// user's Claude config document. A failing step is recorded in the
// returned [Report] and later steps still run; only hard preconditions
// (missing project directory, corrupt managed section, not installed)
// abort before anything is written. Nothing is rolled back.
//
// An [Installer] carries every input explicitly, so tests run against
// temporary directories and a scripted [prompt.Prompter]:
//
//	inst := install.New(install.Params{
//		Project:  project,
//		Store:    mcpconfig.NewStore(configPath, 10),
//		Version:  "1.2.0",
//		Prompter: prompt.Default(),
//	})
//	report, err := inst.Install(install.InstallOptions{Vault: "~/notes"})
package install
