package patch

import "regexp"

// submitAlertPattern matches the blocking alert() shown after a successful
// submission. The "\\n" sequences match the escaped newlines inside the
// JavaScript template literal, not real line breaks.
var submitAlertPattern = regexp.MustCompile(`alert\(` + "`" + `✅ Submission successful!\\n\\nSubmission ID: \$\{result\.submissionId\}\\n\\nDisliked areas: \$\{result\.stats\.dislikedVoxels\} voxels\\nLiked areas: \$\{result\.stats\.likedVoxels\} voxels\\nGround polygons: \$\{result\.stats\.groundPolygons\}\\nLabeled clusters: \$\{result\.stats\.clusters\}\\n\\nThank you for your contribution!` + "`" + `\);`)

const customAlertOverlay = `const overlay = document.createElement('div');
      overlay.className = 'custom-alert-overlay';
      overlay.innerHTML = ` + "`" + `
        <div class="custom-alert">
          <h3>✅ Submission Successful!</h3>
          <div class="custom-alert-content">
            <div style="margin-bottom: 15px; padding: 10px; background: #f0f7ff; border-radius: 6px;">
              <strong>Submission ID:</strong><br>
              <span style="font-size: 11px; color: #666; word-break: break-all;">${result.submissionId}</span>
            </div>
            <div style="margin-bottom: 10px;">
              <strong style="color: #ea4335;">Disliked areas:</strong> ${result.stats.dislikedVoxels} voxels
            </div>
            <div style="margin-bottom: 10px;">
              <strong style="color: #34a853;">Liked areas:</strong> ${result.stats.likedVoxels} voxels
            </div>
            <div style="margin-bottom: 10px;">
              <strong>Ground polygons:</strong> ${result.stats.groundPolygons}
            </div>
            <div style="margin-bottom: 10px;">
              <strong>Labeled clusters:</strong> ${result.stats.clusters}
            </div>
            <p style="margin-top: 15px; color: #666; font-size: 13px;">Thank you for your contribution!</p>
          </div>
          <button class="custom-alert-button" onclick="this.closest('.custom-alert-overlay').remove()">
            OK
          </button>
        </div>
      ` + "`" + `;
      document.body.appendChild(overlay);`

const distanceCheck3D = `// FIX 3: 3D distance check to prevent stacking bug
            const clickHeight = clickPoint[2] || 0;
            const voxelHeight = voxel._center[2] || 0;
            
            const dx = clickPoint[0] - voxel._center[0];
            const dy = clickPoint[1] - voxel._center[1];
            const dz = clickHeight - voxelHeight;
            
            // True 3D distance squared
            const distSquared3D = dx * dx + dy * dy + dz * dz;
            
            if (distSquared3D < radiusDegSquared) {`

const distanceCheckHeightBound = `// FIX 3: 3D distance check to prevent stacking bug
            const clickHeight = clickPoint[2] || 0;
            const voxelHeight = voxel._center[2] || 0;
            
            // Horizontal distance in degrees
            const dx = clickPoint[0] - voxel._center[0];
            const dy = clickPoint[1] - voxel._center[1];
            const distSquared2D = dx * dx + dy * dy;
            
            // CRITICAL: Also check vertical distance (height)
            // Voxels are ~5-10m tall, so if height difference > toolSize, don't paint
            const heightDiff = Math.abs(clickHeight - voxelHeight);
            
            // Only paint if within horizontal range AND height difference is small
            if (distSquared2D < radiusDegSquared && heightDiff < 15) {`

const batchUpdate16ms = `function batchUpdateVoxels() {
  if (updateBatchTimeout) return;
  updateBatchTimeout = setTimeout(() => {
    updateVoxelColors();
    updateBatchTimeout = null;
  }, 16); // ~60fps
}`

const batchUpdate100ms = `function batchUpdateVoxels() {
  if (updateBatchTimeout) return;
  updateBatchTimeout = setTimeout(() => {
    updateVoxelColors();
    updateBatchTimeout = null;
  }, 100); // Update every 100ms instead of 16ms for better performance
}`

const gridRadiusPadded = `const gridRadius = Math.ceil(radiusDeg / GRID_SIZE) + 1;`

const gridRadiusTight = `const gridRadius = Math.ceil(radiusDeg / GRID_SIZE); // Removed +1 to search less area`

// EmergencyRules returns the built-in hotfix rules for the voxel map page,
// in the order they must be applied.
func EmergencyRules() []Rule {
	return []Rule{
		{
			Name:        "Fixing submit popup",
			Summary:     "Submit popup now uses custom styled alert",
			Pattern:     submitAlertPattern,
			Replacement: customAlertOverlay,
		},
		{
			Name:        "Fixing 3D distance (voxel stacking bug)",
			Summary:     "3D distance properly checks height (no stacking)",
			Literal:     distanceCheck3D,
			Replacement: distanceCheckHeightBound,
		},
		{
			Name:        "Boosting performance",
			Summary:     "Performance boosted (100ms batch updates)",
			Literal:     batchUpdate16ms,
			Replacement: batchUpdate100ms,
		},
		{
			Name:        "Optimizing spatial search",
			Summary:     "Reduced spatial search area",
			Literal:     gridRadiusPadded,
			Replacement: gridRadiusTight,
		},
	}
}
