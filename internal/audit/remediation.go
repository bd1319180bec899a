package audit

const (
	duplicateRemediationMessageConstant     = "Consolidate duplicated statements so each fact lives in exactly one note."
	staleRemediationMessageConstant         = "Resolve or delete stale markers (todo, later, tbd, fixme)."
	contradictionRemediationMessageConstant = "Reconcile notes that assert both 'always' and 'never' claims."
	noActionRequiredMessageConstant         = "No action needed."
)

// AdviseRemediation maps findings categories to recommended actions, ordered
// duplicates, stale, contradictions. Only presence matters; when no category
// applies the single no-action message is returned.
func AdviseRemediation(findings ScanFindings) []string {
	var advisories []string
	if len(findings.Duplicates) > 0 {
		advisories = append(advisories, duplicateRemediationMessageConstant)
	}
	if len(findings.StaleCandidates) > 0 {
		advisories = append(advisories, staleRemediationMessageConstant)
	}
	if len(findings.ContradictionHints) > 0 {
		advisories = append(advisories, contradictionRemediationMessageConstant)
	}
	if len(advisories) == 0 {
		advisories = append(advisories, noActionRequiredMessageConstant)
	}
	return advisories
}
