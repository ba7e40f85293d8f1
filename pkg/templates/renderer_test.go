package templates

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	vars := map[string]string{
		"customer_name": "Amina",
		"item_count":    "3",
	}

	tests := []struct {
		name    string
		tmpl    string
		want    string
		wantErr bool
	}{
		{"plain text passes through", "Welcome back!", "Welcome back!", false},
		{"single substitution", "Hi {{customer_name}}", "Hi Amina", false},
		{"repeated placeholder", "{{customer_name}}, {{customer_name}}!", "Amina, Amina!", false},
		{"whitespace inside braces", "You left {{ item_count }} item(s)", "You left 3 item(s)", false},
		{"multiple placeholders", "{{customer_name}} left {{item_count}} items", "Amina left 3 items", false},
		{"unknown placeholder fails", "Hi {{first_name}}", "", true},
		{"known and unknown mixed fails", "Hi {{customer_name}} {{bogus}}", "", true},
		{"single braces are literal", "Hi {customer_name}", "Hi {customer_name}", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.tmpl, vars)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Render(%q) error = %v, wantErr %v", tt.tmpl, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Render(%q) = %q, want %q", tt.tmpl, got, tt.want)
			}
		})
	}
}

func TestRenderReportsEveryUnknownPlaceholder(t *testing.T) {
	_, err := Render("{{foo}} and {{bar}}", map[string]string{})
	if err == nil {
		t.Fatal("expected error for unknown placeholders")
	}
	for _, name := range []string{"foo", "bar"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error %q does not mention %q", err, name)
		}
	}
}

func TestValidate(t *testing.T) {
	allowed := []string{"order_number", "status", "customer_name"}

	tests := []struct {
		name    string
		tmpl    string
		wantErr bool
	}{
		{"no placeholders", "Your order shipped", false},
		{"all allowed", "Order {{order_number}} is now {{status}}", false},
		{"one unknown", "Order {{order_no}} updated", true},
		{"empty template", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.tmpl, allowed)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%q) error = %v, wantErr %v", tt.tmpl, err, tt.wantErr)
			}
		})
	}
}
