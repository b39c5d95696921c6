package email

import "fmt"

// TeacherWelcome carries the fields rendered into the teacher welcome email.
type TeacherWelcome struct {
	Email       string
	Name        string
	TeacherCode string
}

// StudentWelcome carries the fields rendered into the student welcome email.
type StudentWelcome struct {
	Email       string
	Name        string
	StudentCode string
	ClassName   string
}

func teacherWelcomeBody(w TeacherWelcome, baseURL string) string {
	return fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h2 style="color: #2c3e50;">Welcome to CampusLMS</h2>
			<p>Hello %s,</p>
			<p>A teacher account has been created for you. Your login code is:</p>
			<div style="background-color: #f8f9fa; padding: 16px; border-radius: 4px; font-size: 20px; font-weight: bold; text-align: center;">
				%s
			</div>
			<p>Sign in with this code or your email address, then set a password from your profile.</p>
			<p><a href="%s/login" style="color: #3498db;">Go to login</a></p>
			<p style="color: #7f8c8d; font-size: 12px;">If you were not expecting this email, please contact your administrator.</p>
		</div>
	`, w.Name, w.TeacherCode, baseURL)
}

func studentWelcomeBody(w StudentWelcome, baseURL string) string {
	return fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h2 style="color: #2c3e50;">Welcome to CampusLMS</h2>
			<p>Hello %s,</p>
			<p>A student account has been created for you in class <strong>%s</strong>. Your login code is:</p>
			<div style="background-color: #f8f9fa; padding: 16px; border-radius: 4px; font-size: 20px; font-weight: bold; text-align: center;">
				%s
			</div>
			<p>Sign in with this code or your email address, then set a password from your profile.</p>
			<p><a href="%s/login" style="color: #3498db;">Go to login</a></p>
			<p style="color: #7f8c8d; font-size: 12px;">If you were not expecting this email, please contact your administrator.</p>
		</div>
	`, w.Name, w.ClassName, w.StudentCode, baseURL)
}

func passwordResetBody(name, token, baseURL string) string {
	resetURL := fmt.Sprintf("%s/reset?token=%s", baseURL, token)
	return fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h2 style="color: #2c3e50;">Password Reset</h2>
			<p>Hello %s,</p>
			<p>We received a request to reset your CampusLMS password. Click the button below to choose a new one:</p>
			<div style="text-align: center; margin: 24px 0;">
				<a href="%s" style="background-color: #3498db; color: white; padding: 12px 24px; border-radius: 4px; text-decoration: none;">Reset Password</a>
			</div>
			<p>This link expires in one hour and can be used once.</p>
			<p style="color: #7f8c8d; font-size: 12px;">If you did not request a reset, you can safely ignore this email.</p>
		</div>
	`, name, resetURL)
}
