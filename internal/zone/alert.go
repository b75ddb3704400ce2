// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package zone

import (
	"fmt"

	"github.com/usace-mvr/flomon/internal/config"
	"github.com/usace-mvr/flomon/internal/domain"
)

// conditionMemberRole picks which member role a parsed condition reads
// its value from: a precip condition reads the zone's precipitation
// member, pool/stage conditions read its direct member (the zone's
// primary gauge or CWMS instrument, whichever the condition names).
func conditionMemberRole(kind config.ConditionKind) domain.MemberRole {
	if kind == config.ConditionPrecip {
		return domain.RolePrecip
	}
	return domain.RoleDirect
}

// EvaluateAlertCondition interprets a zone's parsed primary_alert_condition
// against its members' latest readings (spec §4.G). A zone with no
// condition, or whose relevant member has no reading, is "unknown"; a
// condition that cannot be matched to a member is also "unknown" rather
// than failing the whole snapshot.
func EvaluateAlertCondition(def config.ZoneDef, members []MemberSnapshot) (domain.AlertStatus, error) {
	if def.Condition == nil {
		return domain.AlertUnknown, nil
	}

	role := conditionMemberRole(def.Condition.Kind)
	var member *MemberSnapshot
	for i := range members {
		if members[i].Role == role {
			member = &members[i]
			break
		}
	}
	if member == nil || member.LatestValue == nil {
		return domain.AlertUnknown, fmt.Errorf("zone %d: no %s-role member reading available to evaluate a %s condition", def.ID, role, def.Condition.Kind)
	}

	value := *member.LatestValue
	exceeded := value > def.Condition.Threshold

	switch {
	case !exceeded:
		return domain.AlertWarning, nil
	case value >= def.Condition.Threshold*1.1:
		return domain.AlertCritical, nil
	default:
		return domain.AlertActive, nil
	}
}
