package handlers

import (
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlmodel"
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlparser"
)

// Namespace URIs for SAML 1.1/2.0 assertions and protocol messages.
const (
	saml20AssertionNS = "urn:oasis:names:tc:SAML:2.0:assertion"
	saml20ProtocolNS  = "urn:oasis:names:tc:SAML:2.0:protocol"
	saml11AssertionNS = "urn:oasis:names:tc:SAML:1.0:assertion"
	saml11ProtocolNS  = "urn:oasis:names:tc:SAML:1.0:protocol"
)

var samlRootElements = map[string]bool{
	"Assertion":      true,
	"Response":       true,
	"AuthnRequest":   true,
	"LogoutRequest":  true,
	"LogoutResponse": true,
}

var samlMessageTypeNames = map[string]string{
	"Assertion":         "Assertion",
	"Response":          "Response",
	"AuthnRequest":      "Authentication Request",
	"LogoutRequest":     "Logout Request",
	"LogoutResponse":    "Logout Response",
	"ArtifactResolve":   "Artifact Resolve",
	"ArtifactResponse":  "Artifact Response",
}

// SAMLHandler recognizes SAML assertions, responses, and requests
// (spec.md §4.4.1). Grounded on
// original_source/src/handlers/saml_handler.py.
type SAMLHandler struct{}

func NewSAMLHandler() *SAMLHandler { return &SAMLHandler{} }

func (h *SAMLHandler) Name() string { return "saml" }

func (h *SAMLHandler) CanHandle(root *xmlparser.Node, namespaces map[string]string) (bool, float64) {
	if !samlRootElements[root.Local] {
		return false, 0.0
	}

	confidence := 0.0
	if hasNamespace(namespaces, saml20AssertionNS) || hasNamespace(namespaces, saml20ProtocolNS) ||
		hasNamespace(namespaces, saml11AssertionNS) || hasNamespace(namespaces, saml11ProtocolNS) ||
		samlNamespaceMatch(root.Namespace) {
		confidence += 0.7
	}

	for _, attr := range []string{"ID", "IssueInstant", "Version", "Issuer"} {
		if _, ok := root.Attr(attr); ok {
			confidence += 0.1
		}
	}
	for _, child := range []string{"Issuer", "Subject", "Conditions", "AttributeStatement", "AuthnStatement"} {
		if root.Child(child) != nil {
			confidence += 0.05
		}
	}

	if confidence >= 0.7 {
		return true, clamp(confidence)
	}
	return false, 0.0
}

func samlNamespaceMatch(uri string) bool {
	return uri == saml20AssertionNS || uri == saml20ProtocolNS || uri == saml11AssertionNS || uri == saml11ProtocolNS
}

func (h *SAMLHandler) DetectType(root *xmlparser.Node, namespaces map[string]string) xmlmodel.DocumentTypeInfo {
	version := samlVersion(root, namespaces)
	messageType := samlMessageType(root)

	return xmlmodel.DocumentTypeInfo{
		TypeName:   "SAML " + version + " " + messageType,
		Confidence: 0.95,
		Version:    version,
		Metadata: map[string]interface{}{
			"protocol":         "SAML",
			"category":         "security_assertion",
			"message_type":     messageType,
			"issuer":           samlIssuer(root),
			"has_signature":    hasSignature(root),
			"has_encryption":   samlHasEncryption(root),
			"assertion_count":  samlCountAssertions(root),
		},
	}
}

func samlVersion(root *xmlparser.Node, namespaces map[string]string) string {
	if v, ok := root.Attr("Version"); ok && v != "" {
		return v
	}
	if samlNamespaceMatch(root.Namespace) {
		if root.Namespace == saml20AssertionNS || root.Namespace == saml20ProtocolNS {
			return "2.0"
		}
		return "1.1"
	}
	for _, uri := range namespaces {
		if uri == saml20AssertionNS || uri == saml20ProtocolNS {
			return "2.0"
		}
		if uri == saml11AssertionNS || uri == saml11ProtocolNS {
			return "1.1"
		}
	}
	return "2.0"
}

func samlMessageType(root *xmlparser.Node) string {
	if name, ok := samlMessageTypeNames[root.Local]; ok {
		return name
	}
	return root.Local
}

func samlIssuer(root *xmlparser.Node) string {
	return textOf(root, "Issuer")
}

func samlHasEncryption(root *xmlparser.Node) bool {
	return root.Descendant("EncryptedAssertion") != nil ||
		root.Descendant("EncryptedID") != nil ||
		root.Descendant("EncryptedAttribute") != nil
}

func samlCountAssertions(root *xmlparser.Node) int {
	count := 0
	if root.Local == "Assertion" {
		count++
	}
	count += len(root.Descendants("Assertion"))
	return count
}

func (h *SAMLHandler) Analyze(root *xmlparser.Node, filePath string) (xmlmodel.SpecializedAnalysis, error) {
	security := h.analyzeSecurity(root)
	subject := h.analyzeSubject(root)
	conditions := h.analyzeConditions(root)
	assertions := h.analyzeAssertions(root)
	attributes := h.analyzeAttributes(root)
	authn := h.analyzeAuthentication(root)

	findings := map[string]interface{}{
		"saml_info": map[string]interface{}{
			"version":      samlVersion(root, nil),
			"message_type": samlMessageType(root),
			"id":           root.AttrOr("ID", ""),
			"issue_instant": root.AttrOr("IssueInstant", ""),
			"issuer":       samlIssuer(root),
			"destination":  root.AttrOr("Destination", ""),
			"consent":      root.AttrOr("Consent", ""),
			"in_response_to": root.AttrOr("InResponseTo", ""),
			"has_signature": security["has_signature"],
			"has_encryption": security["has_encryption"],
		},
		"assertions":         assertions,
		"subject_info":       subject,
		"conditions":         conditions,
		"attributes":         attributes,
		"authentication":     authn,
		"security":           security,
		"validation_metrics": h.validationMetrics(root, conditions, attributes, assertions),
	}

	recommendations := []string{
		"Validate digital signatures on all SAML assertions",
		"Check assertion validity periods and conditions",
		"Analyze attribute statements for sensitive data exposure",
		"Verify issuer trust relationships and certificates",
		"Monitor for SAML injection and manipulation attacks",
		"Review authentication context and session management",
		"Analyze for compliance with SAML security profiles",
		"Check encryption requirements for sensitive assertions",
	}

	aiUseCases := []string{
		"SAML security analysis and vulnerability assessment",
		"SSO configuration validation and optimization",
		"Identity federation security monitoring",
		"SAML assertion fraud detection",
		"Compliance auditing (SOX, HIPAA, PCI-DSS)",
		"Authentication flow analysis and optimization",
		"Certificate and trust chain validation",
		"SAML protocol attack detection",
		"Identity attribute analysis and privacy protection",
	}

	assertionDetails, _ := assertions["assertion_details"].([]map[string]interface{})
	attributeStatements, _ := attributes["attribute_statements"].([]map[string]interface{})
	conditionTypes, _ := conditions["condition_types"].([]string)
	hasSubject, _ := subject["has_subject"].(bool)
	hasSig, _ := security["has_signature"].(bool)

	dataInventory := map[string]int{
		"assertions": len(assertionDetails),
		"attributes": len(attributeStatements),
		"subjects":   boolToInt(hasSubject),
		"conditions": len(conditionTypes),
		"signatures": boolToInt(hasSig),
	}

	return xmlmodel.SpecializedAnalysis{
		KeyFindings:     findings,
		Recommendations: recommendations,
		DataInventory:   dataInventory,
		AIUseCases:      aiUseCases,
		StructuredData:  h.ExtractKeyData(root),
		QualityMetrics:  h.assessQuality(findings, security, subject, conditions, assertions, attributes, authn),
	}, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (h *SAMLHandler) analyzeSubject(root *xmlparser.Node) map[string]interface{} {
	info := map[string]interface{}{
		"has_subject":           false,
		"name_id":               "",
		"name_id_format":        "",
		"subject_confirmations": []map[string]interface{}{},
		"encrypted_id":          false,
	}

	subject := root.Descendant("Subject")
	if subject == nil {
		return info
	}
	info["has_subject"] = true

	if nameID := subject.Child("NameID"); nameID != nil {
		info["name_id"] = nameID.TextTrimmed()
		info["name_id_format"] = nameID.AttrOr("Format", "")
	}
	if subject.Descendant("EncryptedID") != nil {
		info["encrypted_id"] = true
	}

	var confirmations []map[string]interface{}
	for _, c := range subject.Descendants("SubjectConfirmation") {
		confirmations = append(confirmations, map[string]interface{}{
			"method":   c.AttrOr("Method", ""),
			"has_data": c.Child("SubjectConfirmationData") != nil,
		})
	}
	info["subject_confirmations"] = confirmations
	return info
}

func (h *SAMLHandler) analyzeConditions(root *xmlparser.Node) map[string]interface{} {
	info := map[string]interface{}{
		"has_conditions":       false,
		"not_before":           "",
		"not_on_or_after":      "",
		"condition_types":      []string{},
		"audience_restrictions": []string{},
	}

	conditions := root.Descendant("Conditions")
	if conditions == nil {
		return info
	}
	info["has_conditions"] = true
	info["not_before"] = conditions.AttrOr("NotBefore", "")
	info["not_on_or_after"] = conditions.AttrOr("NotOnOrAfter", "")

	var types []string
	var audiences []string
	for _, child := range conditions.Children {
		types = append(types, child.Local)
		if child.Local == "AudienceRestriction" {
			for _, aud := range child.ChildrenNamed("Audience") {
				if t := aud.TextTrimmed(); t != "" {
					audiences = append(audiences, t)
				}
			}
		}
	}
	info["condition_types"] = types
	info["audience_restrictions"] = audiences
	return info
}

func (h *SAMLHandler) analyzeAssertions(root *xmlparser.Node) map[string]interface{} {
	var assertions []*xmlparser.Node
	if root.Local == "Assertion" {
		assertions = append(assertions, root)
	}
	assertions = append(assertions, root.Descendants("Assertion")...)
	encryptedCount := len(root.Descendants("EncryptedAssertion"))

	var details []map[string]interface{}
	for _, a := range assertions {
		details = append(details, map[string]interface{}{
			"id":                a.AttrOr("ID", ""),
			"issue_instant":     a.AttrOr("IssueInstant", ""),
			"issuer":            samlIssuer(a),
			"version":           a.AttrOr("Version", ""),
			"has_signature":     a.Descendant("Signature") != nil,
			"subject_present":   a.Descendant("Subject") != nil,
			"conditions_present": a.Descendant("Conditions") != nil,
			"statements":        samlCountStatements(a),
		})
	}

	return map[string]interface{}{
		"assertion_count":      len(assertions),
		"assertion_details":    details,
		"encrypted_assertions": encryptedCount,
	}
}

func samlCountStatements(assertion *xmlparser.Node) map[string]int {
	counts := map[string]int{"AuthnStatement": 0, "AttributeStatement": 0, "AuthzDecisionStatement": 0}
	assertion.Walk(func(n *xmlparser.Node) bool {
		if _, ok := counts[n.Local]; ok {
			counts[n.Local]++
		}
		return true
	})
	return counts
}

func (h *SAMLHandler) analyzeAttributes(root *xmlparser.Node) map[string]interface{} {
	var statements []map[string]interface{}
	total := 0
	encrypted := 0

	for _, stmt := range root.Descendants("AttributeStatement") {
		var attrs []map[string]interface{}
		stmtEncrypted := 0
		for _, child := range stmt.Children {
			switch child.Local {
			case "Attribute":
				var values []string
				for _, v := range child.ChildrenNamed("AttributeValue") {
					values = append(values, v.TextTrimmed())
				}
				attrs = append(attrs, map[string]interface{}{
					"name":          child.AttrOr("Name", ""),
					"name_format":   child.AttrOr("NameFormat", ""),
					"friendly_name": child.AttrOr("FriendlyName", ""),
					"values":        values,
				})
				total++
			case "EncryptedAttribute":
				stmtEncrypted++
				encrypted++
			}
		}
		statements = append(statements, map[string]interface{}{
			"attributes":            attrs,
			"encrypted_attributes":  stmtEncrypted,
		})
	}

	return map[string]interface{}{
		"attribute_statements":  statements,
		"total_attributes":      total,
		"encrypted_attributes":  encrypted,
	}
}

func (h *SAMLHandler) analyzeAuthentication(root *xmlparser.Node) map[string]interface{} {
	var statements []map[string]interface{}
	for _, stmt := range root.Descendants("AuthnStatement") {
		info := map[string]interface{}{
			"authn_instant":           stmt.AttrOr("AuthnInstant", ""),
			"session_index":           stmt.AttrOr("SessionIndex", ""),
			"session_not_on_or_after": stmt.AttrOr("SessionNotOnOrAfter", ""),
			"authn_context":           "",
			"locality":                nil,
		}
		if ctx := stmt.Child("AuthnContext"); ctx != nil {
			if ref := ctx.Child("AuthnContextClassRef"); ref != nil {
				info["authn_context"] = ref.TextTrimmed()
			}
		}
		if locality := stmt.Child("SubjectLocality"); locality != nil {
			info["locality"] = map[string]interface{}{
				"address":  locality.AttrOr("Address", ""),
				"dns_name": locality.AttrOr("DNSName", ""),
			}
		}
		statements = append(statements, info)
	}
	return map[string]interface{}{"authn_statements": statements, "session_info": map[string]interface{}{}}
}

func (h *SAMLHandler) analyzeSecurity(root *xmlparser.Node) map[string]interface{} {
	hasSig := hasSignature(root)
	hasEnc := samlHasEncryption(root)

	var sigDetails []map[string]interface{}
	for _, sig := range root.Descendants("Signature") {
		isRootChild := sig.Parent == root
		location := "nested"
		if isRootChild {
			location = "root"
		}
		sigDetails = append(sigDetails, map[string]interface{}{
			"location":     location,
			"has_key_info": sig.Child("KeyInfo") != nil,
		})
	}

	var encDetails []map[string]interface{}
	for _, local := range []string{"EncryptedAssertion", "EncryptedID", "EncryptedAttribute"} {
		for _, e := range root.Descendants(local) {
			encDetails = append(encDetails, map[string]interface{}{
				"type":         local,
				"has_key_info": e.Child("KeyInfo") != nil,
			})
		}
	}

	var risks []string
	if !hasSig {
		risks = append(risks, "No digital signature present")
	}
	if samlIssuer(root) == "" {
		risks = append(risks, "No issuer specified")
	}
	subject := h.analyzeSubject(root)
	if subject["name_id_format"] == "urn:oasis:names:tc:SAML:1.1:nameid-format:unspecified" {
		risks = append(risks, "Unspecified NameID format may pose security risk")
	}

	return map[string]interface{}{
		"has_signature":      hasSig,
		"has_encryption":     hasEnc,
		"signature_details":  sigDetails,
		"encryption_details": encDetails,
		"security_risks":     risks,
	}
}

func (h *SAMLHandler) validationMetrics(root *xmlparser.Node, conditions, attributes, assertions map[string]interface{}) map[string]interface{} {
	total := root.Count()
	assertionCount := samlCountAssertions(root)
	attrCount := attributes["total_attributes"].(int)
	conditionTypes, _ := conditions["condition_types"].([]string)
	conditionCount := len(conditionTypes)

	securityElements := 0
	if hasSignature(root) {
		securityElements++
	}
	if samlHasEncryption(root) {
		securityElements++
	}

	complexity := float64(assertionCount)*0.3 + float64(attrCount)*0.1 + float64(conditionCount)*0.2 + float64(securityElements)*0.4

	validationPoints := 0.0
	if hasSignature(root) {
		validationPoints += 0.4
	}
	if samlIssuer(root) != "" {
		validationPoints += 0.2
	}
	if hasConditions, _ := conditions["has_conditions"].(bool); hasConditions {
		validationPoints += 0.2
	}
	subject := h.analyzeSubject(root)
	if hasSubject, _ := subject["has_subject"].(bool); hasSubject {
		validationPoints += 0.2
	}

	return map[string]interface{}{
		"total_elements":    total,
		"assertion_count":   assertionCount,
		"attribute_count":   attrCount,
		"condition_count":   conditionCount,
		"security_elements": securityElements,
		"complexity_score":  complexity,
		"validation_score":  validationPoints,
	}
}

func (h *SAMLHandler) assessQuality(findings, security, subject, conditions, assertions, attributes, authn map[string]interface{}) map[string]float64 {
	securityScore := 0.0
	hasSig, _ := security["has_signature"].(bool)
	hasEnc, _ := security["has_encryption"].(bool)
	risks, _ := security["security_risks"].([]string)
	if hasSig {
		securityScore += 0.4
	}
	if hasEnc {
		securityScore += 0.2
	}
	if len(risks) == 0 {
		securityScore += 0.3
	}
	samlInfo, _ := findings["saml_info"].(map[string]interface{})
	if issuer, _ := samlInfo["issuer"].(string); issuer != "" {
		securityScore += 0.1
	}

	structureScore := 0.0
	hasSubject, _ := subject["has_subject"].(bool)
	hasConditions, _ := conditions["has_conditions"].(bool)
	assertionCount, _ := assertions["assertion_count"].(int)
	if hasSubject {
		structureScore += 0.3
	}
	if hasConditions {
		structureScore += 0.3
	}
	if assertionCount > 0 {
		structureScore += 0.4
	}

	complianceScore := 0.8
	notBefore, _ := conditions["not_before"].(string)
	notOnOrAfter, _ := conditions["not_on_or_after"].(string)
	if hasConditions && notBefore != "" && notOnOrAfter != "" {
		complianceScore += 0.2
	}
	complianceScore = clamp(complianceScore)

	completenessScore := 0.0
	totalAttrs, _ := attributes["total_attributes"].(int)
	authnStatements, _ := authn["authn_statements"].([]map[string]interface{})
	nameID, _ := subject["name_id"].(string)
	if totalAttrs > 0 {
		completenessScore += 0.3
	}
	if len(authnStatements) > 0 {
		completenessScore += 0.3
	}
	if nameID != "" {
		completenessScore += 0.4
	}

	overall := (securityScore + structureScore + complianceScore + completenessScore) / 4

	return map[string]float64{
		"security":     clamp(securityScore),
		"structure":    clamp(structureScore),
		"compliance":   complianceScore,
		"completeness": clamp(completenessScore),
		"overall":      clamp(overall),
	}
}

func (h *SAMLHandler) ExtractKeyData(root *xmlparser.Node) map[string]interface{} {
	security := h.analyzeSecurity(root)
	subject := h.analyzeSubject(root)
	conditions := h.analyzeConditions(root)
	assertions := h.analyzeAssertions(root)

	confirmationMethods := []string{}
	confirmations, _ := subject["subject_confirmations"].([]map[string]interface{})
	for _, c := range confirmations {
		if m, _ := c["method"].(string); m != "" {
			confirmationMethods = append(confirmationMethods, m)
		}
	}

	details, _ := assertions["assertion_details"].([]map[string]interface{})
	issuerSet := map[string]bool{}
	for _, d := range details {
		if iss, _ := d["issuer"].(string); iss != "" {
			issuerSet[iss] = true
		}
	}
	var issuers []string
	for iss := range issuerSet {
		issuers = append(issuers, iss)
	}

	var conditionsSummary interface{}
	if hasConditions, _ := conditions["has_conditions"].(bool); hasConditions {
		conditionsSummary = map[string]interface{}{
			"not_before":      conditions["not_before"],
			"not_on_or_after": conditions["not_on_or_after"],
			"condition_types": conditions["condition_types"],
			"audiences":       conditions["audience_restrictions"],
		}
	}

	return map[string]interface{}{
		"document_metadata": map[string]interface{}{
			"version":       samlVersion(root, nil),
			"type":          samlMessageType(root),
			"issuer":        samlIssuer(root),
			"id":            root.AttrOr("ID", ""),
			"issue_instant": root.AttrOr("IssueInstant", ""),
		},
		"security_summary": map[string]interface{}{
			"has_signature":     security["has_signature"],
			"has_encryption":    security["has_encryption"],
			"signature_count":   len(security["signature_details"].([]map[string]interface{})),
			"encryption_count":  len(security["encryption_details"].([]map[string]interface{})),
			"security_risks":    security["security_risks"],
		},
		"subject_summary": map[string]interface{}{
			"has_subject":          subject["has_subject"],
			"name_id":              subject["name_id"],
			"name_id_format":       subject["name_id_format"],
			"confirmation_methods": confirmationMethods,
		},
		"assertion_summary": map[string]interface{}{
			"assertion_count": assertions["assertion_count"],
			"encrypted_count": assertions["encrypted_assertions"],
			"issuers":         issuers,
		},
		"conditions_summary": conditionsSummary,
	}
}
