// Package evaluator scores a resource snapshot against the Well-Architected
// pillar rule sets. Evaluation is a pure function of the snapshot and the
// requested pillar set.
package evaluator

import (
	"fmt"

	"github.com/de-tools/arch-atlas/pkg/models/domain"
)

// RuleSet is one pillar's evaluation: snapshot in, findings and
// recommendations out.
type RuleSet func(snapshot domain.Snapshot) ([]domain.Finding, []domain.Recommendation)

// Rules holds every pillar's rule set. All four pillars are always
// dispatchable; performance and cost currently emit nothing but must stay
// callable because pillar selection iterates the full map.
func Rules() map[domain.Pillar]RuleSet {
	return map[domain.Pillar]RuleSet{
		domain.PillarSecurity:    evaluateSecurity,
		domain.PillarReliability: evaluateReliability,
		domain.PillarPerformance: evaluatePerformance,
		domain.PillarCost:        evaluateCost,
	}
}

// Evaluate runs the rule sets enabled by the requested pillars (or the
// `all` sentinel) in the fixed evaluation order and concatenates their
// output.
func Evaluate(snapshot domain.Snapshot, pillars []domain.Pillar) ([]domain.Finding, []domain.Recommendation) {
	rules := Rules()

	var findings []domain.Finding
	var recs []domain.Recommendation
	for _, pillar := range domain.EvaluationOrder() {
		if !enabled(pillars, pillar) {
			continue
		}
		f, r := rules[pillar](snapshot)
		findings = append(findings, f...)
		recs = append(recs, r...)
	}

	return findings, recs
}

func enabled(requested []domain.Pillar, pillar domain.Pillar) bool {
	for _, p := range requested {
		if p == domain.PillarAll || p == pillar {
			return true
		}
	}
	return false
}

func evaluateSecurity(snapshot domain.Snapshot) ([]domain.Finding, []domain.Recommendation) {
	var findings []domain.Finding
	var recs []domain.Recommendation

	for _, bucket := range snapshot.ObjectStorage.Buckets {
		if bucket.Encrypted {
			continue
		}

		findings = append(findings, domain.Finding{
			ID:          domain.FindingID("s3-encryption", bucket.Name),
			Pillar:      "Security",
			Title:       "S3 Bucket Not Encrypted",
			Description: fmt.Sprintf("S3 bucket %s does not have encryption enabled", bucket.Name),
			Severity:    domain.SeverityHigh,
			ResourceArn: fmt.Sprintf("arn:aws:s3:::%s", bucket.Name),
			Service:     "S3",
		})
		recs = append(recs, domain.Recommendation{
			ID:                  domain.FindingID("s3-encryption-rec", bucket.Name),
			Title:               "Enable S3 Bucket Encryption",
			Description:         fmt.Sprintf("Enable server-side encryption for S3 bucket %s", bucket.Name),
			Priority:            "HIGH",
			Effort:              "Low",
			ImplementationGuide: "Use AWS KMS or AES-256 encryption for S3 bucket",
		})
	}

	return findings, recs
}

// evaluateReliability intentionally emits no recommendation for the
// multi-AZ finding; the remediation is self-describing.
func evaluateReliability(snapshot domain.Snapshot) ([]domain.Finding, []domain.Recommendation) {
	var findings []domain.Finding

	for _, instance := range snapshot.Databases.Instances {
		if instance.MultiAZ {
			continue
		}

		findings = append(findings, domain.Finding{
			ID:     domain.FindingID("rds-multiaz", instance.Identifier),
			Pillar: "Reliability",
			Title:  "RDS Instance Not Multi-AZ",
			Description: fmt.Sprintf(
				"RDS instance %s is not configured for Multi-AZ deployment", instance.Identifier),
			Severity: domain.SeverityMedium,
			ResourceArn: fmt.Sprintf("arn:aws:rds:%s:%s:db:%s",
				snapshot.Region, snapshot.AccountID, instance.Identifier),
			Service: "RDS",
		})
	}

	return findings, nil
}

func evaluatePerformance(_ domain.Snapshot) ([]domain.Finding, []domain.Recommendation) {
	return nil, nil
}

func evaluateCost(_ domain.Snapshot) ([]domain.Finding, []domain.Recommendation) {
	return nil, nil
}
