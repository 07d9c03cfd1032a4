package mail

// verificationData feeds the verification email template.
type verificationData struct {
	Name    string
	Link    string
	AppName string
	// QRImage is a base64-encoded PNG of the verification link, inlined as a
	// data URI so mail clients need no remote fetch. Empty when QR rendering
	// failed; the template then renders the link only.
	QRImage string
}

// emailTemplates holds the embedded HTML templates for outbound mail.
const emailTemplates = `
{{define "verification"}}
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Verify your email</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Oxygen, Ubuntu, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
            background-color: #f5f5f5;
        }
        .container {
            background-color: #ffffff;
            border-radius: 12px;
            padding: 40px;
            box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1);
        }
        .header {
            text-align: center;
            margin-bottom: 30px;
        }
        .logo {
            font-size: 28px;
            font-weight: bold;
            color: #4F46E5;
        }
        h1 {
            color: #1a1a1a;
            font-size: 24px;
            margin-bottom: 20px;
        }
        .button {
            display: inline-block;
            background-color: #4F46E5;
            color: #ffffff !important;
            text-decoration: none;
            padding: 14px 28px;
            border-radius: 8px;
            font-weight: 600;
            margin: 20px 0;
        }
        .qr {
            text-align: center;
            margin: 24px 0;
        }
        .footer {
            margin-top: 30px;
            font-size: 13px;
            color: #888;
            text-align: center;
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <div class="logo">{{.AppName}}</div>
        </div>
        <h1>Hi {{.Name}},</h1>
        <p>Thanks for signing up. Please confirm your email address by clicking the button below.</p>
        <p style="text-align: center;">
            <a class="button" href="{{.Link}}">Verify email</a>
        </p>
        {{if .QRImage}}
        <div class="qr">
            <p>Or scan this code on another device:</p>
            <img src="data:image/png;base64,{{.QRImage}}" alt="verification QR code" width="160" height="160">
        </div>
        {{end}}
        <p>If the button does not work, copy this link into your browser:</p>
        <p><a href="{{.Link}}">{{.Link}}</a></p>
        <div class="footer">
            <p>The link expires in 48 hours. If you did not create an account, you can ignore this email.</p>
        </div>
    </div>
</body>
</html>
{{end}}
`
